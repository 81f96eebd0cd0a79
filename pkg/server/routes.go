package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/getlistd/listd/pkg/keeper"
)

func (s *Server) buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metricsHandler())

	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/lists", s.handleLists)
	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("POST /api/import", s.handleImport)
	mux.HandleFunc("POST /api/reset", s.handleResetAll)
	mux.HandleFunc("POST /api/clear", s.handleClearAll)

	mountKind(s, mux, "tasks", s.stores.Tasks)
	mountKind(s, mux, "groceries", s.stores.Groceries)
	mountKind(s, mux, "cards", s.stores.Cards)

	return s.withMiddleware(mux)
}

// mountKind registers the per-list routes for one keeper. It is a free
// function because methods cannot introduce type parameters.
func mountKind[T keeper.Entry](s *Server, mux *http.ServeMux, plural string, k *keeper.Keeper[T]) {
	base := "/api/" + plural

	mux.HandleFunc("GET "+base, handleQuery(s, k))
	mux.HandleFunc("POST "+base, handleCreate(s, plural, k))
	mux.HandleFunc("POST "+base+"/reset", handleReset(s, plural, k))
	mux.HandleFunc("POST "+base+"/clear", handleClear(s, plural, k))
	mux.HandleFunc("GET "+base+"/{id}", withID(s, plural, "get", k.Get))
	mux.HandleFunc("PUT "+base+"/{id}", handleUpdate(s, plural, k))
	mux.HandleFunc("DELETE "+base+"/{id}", withID(s, plural, "delete", k.Delete))
	mux.HandleFunc("POST "+base+"/{id}/done", handleDone(s, plural, k))
}

// parseID extracts the {id} path value. Unparsable ids are a 400, not a
// 404: the route matched, the id is malformed.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// withID adapts a keeper method of the (id) -> (item, error) shape into a
// handler. Covers Get and Delete.
func withID[T keeper.Entry](s *Server, plural, op string, fn func(int64) (*keeper.Item[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			writeErrorCode(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}
		it, err := fn(id)
		if err != nil {
			writeError(w, err)
			return
		}
		s.metrics.observeOp(plural, op)
		writeJSON(w, http.StatusOK, it)
	}
}

func handleQuery[T keeper.Entry](s *Server, k *keeper.Keeper[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := filterFromQuery(r)
		if err != nil {
			writeErrorCode(w, http.StatusBadRequest, "invalid_query", err.Error())
			return
		}
		page, err := k.Query(filter)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func handleCreate[T keeper.Entry](s *Server, plural string, k *keeper.Keeper[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := decodeBody[T](r)
		if err != nil {
			writeError(w, err)
			return
		}
		it, err := k.Create(fields)
		if err != nil {
			writeError(w, err)
			return
		}
		s.metrics.observeOp(plural, "create")
		s.log.Info("item created", "list", plural, "id", it.ID)
		writeJSON(w, http.StatusCreated, it)
	}
}

func handleUpdate[T keeper.Entry](s *Server, plural string, k *keeper.Keeper[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			writeErrorCode(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}
		fields, err := decodeBody[T](r)
		if err != nil {
			writeError(w, err)
			return
		}
		it, err := k.Update(id, fields)
		if err != nil {
			writeError(w, err)
			return
		}
		s.metrics.observeOp(plural, "update")
		writeJSON(w, http.StatusOK, it)
	}
}

func handleDone[T keeper.Entry](s *Server, plural string, k *keeper.Keeper[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			writeErrorCode(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}
		it, err := k.MarkDone(id)
		if err != nil {
			writeError(w, err)
			return
		}
		s.metrics.observeOp(plural, "done")
		writeJSON(w, http.StatusOK, it)
	}
}

func handleReset[T keeper.Entry](s *Server, plural string, k *keeper.Keeper[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := k.Reset()
		s.metrics.observeOp(plural, "reset")
		s.log.Info("list reset", "list", plural, "items", n)
		writeJSON(w, http.StatusOK, map[string]interface{}{"list": plural, "items": n})
	}
}

func handleClear[T keeper.Entry](s *Server, plural string, k *keeper.Keeper[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := k.Clear()
		s.metrics.observeOp(plural, "clear")
		s.log.Info("list cleared", "list", plural, "removed", n)
		writeJSON(w, http.StatusOK, map[string]interface{}{"list": plural, "removed": n})
	}
}

// decodeBody reads a JSON request body into a typed entry. Unknown fields
// are rejected the same way seed decoding rejects them.
func decodeBody[T keeper.Entry](r *http.Request) (T, error) {
	var fields T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fields); err != nil {
		return fields, &keeper.ValidationError{Kind: fields.Kind(), Message: err.Error()}
	}
	return fields, nil
}

// filterFromQuery builds a QueryFilter from URL query parameters.
func filterFromQuery(r *http.Request) (*keeper.QueryFilter, error) {
	q := r.URL.Query()
	filter := keeper.DefaultQueryFilter()
	filter.Where = q.Get("where")
	filter.Sort = q.Get("sort")
	filter.Order = q.Get("order")

	if v := q.Get("done"); v != "" {
		done, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errInvalidParam("done", v)
		}
		filter.Done = &done
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, errInvalidParam("limit", v)
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return nil, errInvalidParam("offset", v)
		}
		filter.Offset = offset
	}
	return filter, nil
}

type paramError struct {
	name, value string
}

func errInvalidParam(name, value string) error {
	return &paramError{name: name, value: value}
}

func (e *paramError) Error() string {
	return "invalid value " + strconv.Quote(e.value) + " for query parameter " + strconv.Quote(e.name)
}
