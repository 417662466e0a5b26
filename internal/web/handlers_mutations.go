package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/dashboard/internal/core"
)

// maxItemBody bounds add and update request bodies.
const maxItemBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxItemBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// handleAdd creates an item in the collection from a JSON body.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		item any
		err  error
	)
	switch key := chi.URLParam(r, "collection"); key {
	case core.PeopleKey:
		var in core.PersonInput
		if err = decodeJSON(w, r, &in); err == nil {
			item, err = s.service.AddPerson(ctx, in)
		}
	case core.LibraryKey:
		var in core.LibraryInput
		if err = decodeJSON(w, r, &in); err == nil {
			item, err = s.service.AddLibraryItem(ctx, in)
		}
	case core.AssetsKey:
		var in core.AssetInput
		if err = decodeJSON(w, r, &in); err == nil {
			item, err = s.service.AddAsset(ctx, in)
		}
	default:
		_, err = s.service.Collection(key)
		if err == nil {
			err = fmt.Errorf("add to %s: %w", key, errNotSupported)
		}
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// handleUpdate edits a person. Other collections are edited through bulk
// actions only.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "collection")
	if key != core.PeopleKey {
		if _, err := s.service.Collection(key); err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondError(w, r, fmt.Errorf("update %s: %w", key, errNotSupported))
		return
	}

	var in core.PersonInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	p, err := s.service.UpdatePerson(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleImport imports assets from an uploaded CSV in the "file" form
// field. Rejected rows are listed in the result; the request only fails
// when the file itself is unusable.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "collection")
	if key != core.AssetsKey {
		if _, err := s.service.Collection(key); err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondError(w, r, fmt.Errorf("import into %s: %w", key, errNotSupported))
		return
	}

	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			s.respondError(w, r, fmt.Errorf("%w: limit is %d bytes", errFileTooLarge, maxSize))
			return
		}
		s.respondError(w, r, fmt.Errorf("%w: %v", errMissingImport, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errMissingImport)
		return
	}
	defer file.Close()

	result, err := s.service.ImportAssets(r.Context(), header.Filename, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.metrics.recordImport(key, result)

	if isForm(r) && !wantsJSON(r) && !isHTMX(r) {
		http.Redirect(w, r, "/"+key, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
