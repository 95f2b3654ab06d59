package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dmitrijs2005/chainvote/internal/common"
	"github.com/dmitrijs2005/chainvote/internal/server/pinning"
)

// validationStatus maps request validation sentinels shared by the wallet
// endpoints. ok is false for anything else.
func validationStatus(err error) (status int, msg string, ok bool) {
	switch {
	case errors.Is(err, common.ErrAddressRequired):
		return http.StatusBadRequest, msgAddressRequired, true
	case errors.Is(err, common.ErrSignatureRequired):
		return http.StatusBadRequest, msgSignatureRequired, true
	case errors.Is(err, common.ErrInvalidSignature):
		return http.StatusUnauthorized, msgSignatureFailed, true
	}
	return 0, "", false
}

// decodeWalletRequest reads the JSON body. An empty body decodes to an empty
// request so the missing address is reported as such.
func decodeWalletRequest(w http.ResponseWriter, r *http.Request) (*walletRequest, bool) {
	req := &walletRequest{}
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(req)
	if err != nil && !errors.Is(err, io.EOF) {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return nil, false
	}
	return req, true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeWalletRequest(w, r)
	if !ok {
		return
	}

	_, err := s.users.Register(ctx, req.WalletAddress, req.Signature)
	if err != nil {
		if status, msg, ok := validationStatus(err); ok {
			writeMessage(w, status, msg)
			return
		}
		if errors.Is(err, common.ErrAlreadyRegistered) {
			writeMessage(w, http.StatusBadRequest, msgAlreadyRegistered)
			return
		}
		s.log(ctx).Error(ctx, "register failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgRegisterFailed)
		return
	}

	writeMessage(w, http.StatusCreated, msgRegistered)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeWalletRequest(w, r)
	if !ok {
		return
	}

	token, err := s.users.Login(ctx, req.WalletAddress, req.Signature)
	if err != nil {
		if status, msg, ok := validationStatus(err); ok {
			writeMessage(w, status, msg)
			return
		}
		switch {
		case errors.Is(err, common.ErrNoRegisteredUsers):
			writeMessage(w, http.StatusBadRequest, msgNoRegisteredUsers)
		case errors.Is(err, common.ErrWalletNotRegistered):
			writeMessage(w, http.StatusBadRequest, msgWalletNotFound)
		default:
			s.log(ctx).Error(ctx, "login failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, msgServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Message: msgLoginOK})
}

// handleUpdateProfile pins the uploaded photo and records its CID. It answers
// 400 for a missing address or file and for an oversized photo, 404 when the
// wallet is not registered (nothing is pinned then) and 500 when pinning or
// the store update fails.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bodyLimit := s.maxUploadSize + multipartOverhead
	if r.ContentLength > bodyLimit {
		writeMessage(w, http.StatusBadRequest, msgFileTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeMessage(w, http.StatusBadRequest, msgFileTooLarge)
			return
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			// no form at all: report the missing fields below
		default:
			writeMessage(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	address := r.FormValue("walletAddress")

	var file *pinning.File
	if f, hdr, err := r.FormFile("file"); err == nil {
		defer f.Close()
		if hdr.Size > s.maxUploadSize {
			writeMessage(w, http.StatusBadRequest, msgFileTooLarge)
			return
		}
		file = uploadedFile(f, hdr)
	}

	cid, err := s.profiles.UpdatePhoto(ctx, address, file)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAddressRequired):
			writeMessage(w, http.StatusBadRequest, msgAddressRequired)
		case errors.Is(err, common.ErrFileRequired):
			writeMessage(w, http.StatusBadRequest, msgFileRequired)
		case errors.Is(err, common.ErrorNotFound):
			writeMessage(w, http.StatusNotFound, msgProfileNotFound)
		case errors.Is(err, common.ErrPinningFailed):
			s.log(ctx).Error(ctx, "pinning failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, msgPinningFailed)
		default:
			s.log(ctx).Error(ctx, "profile photo update failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, msgPhotoUpdateFailed)
		}
		return
	}

	writeJSON(w, http.StatusOK, updateProfileResponse{Message: msgPhotoUpdated, Hash: cid})
}

func uploadedFile(f multipart.File, hdr *multipart.FileHeader) *pinning.File {
	return &pinning.File{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Size:        hdr.Size,
		Content:     f,
	}
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	photo, err := s.profiles.GetPhoto(ctx, r.PathValue("walletAddress"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAddressRequired):
			writeMessage(w, http.StatusBadRequest, msgAddressRequired)
		case errors.Is(err, common.ErrorNotFound):
			writeMessage(w, http.StatusNotFound, msgProfileNotFound)
		default:
			s.log(ctx).Error(ctx, "profile fetch failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, msgProfileFetchFailed)
		}
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{ProfilePhoto: photo})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	acc, err := s.users.Me(ctx, userIDFrom(ctx))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, msgProfileNotFound)
			return
		}
		s.log(ctx).Error(ctx, "me failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{ID: acc.ID, WalletAddress: acc.WalletAddress, ProfilePhoto: acc.ProfilePhoto})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.log(ctx).Warn(ctx, "store ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
