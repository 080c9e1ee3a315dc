package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"restmapper/internal/common"
	"restmapper/internal/descriptor"
	"restmapper/internal/schema"
)

func (s *Server) newRouter() *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	r.Use(logRequests)

	r.HandleFunc("/objects", s.listObjects).Methods(http.MethodGet)
	r.HandleFunc("/objects/{name}/schema", s.getSchema).Methods(http.MethodGet)
	r.HandleFunc("/objects/{name}/convert", s.convert).Methods(http.MethodPost)
	r.HandleFunc("/objects/{name}/payload", s.payload).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, newError(http.StatusNotFound, CodeNoRoute,
			fmt.Errorf("unrecognized request URL (%s: %s)", r.Method, r.URL.Path)))
	})

	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debugf("%s %s %s", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}

type objectInfo struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Description string   `json:"description,omitempty"`
	Fields      int      `json:"fields"`
	Nested      []string `json:"nested,omitempty"`
}

func (s *Server) listObjects(w http.ResponseWriter, r *http.Request) {
	var filter *descriptor.ObjectKind

	if k := r.URL.Query().Get("kind"); k != "" {
		kind, err := descriptor.ParseObjectKind(k)
		if err != nil {
			writeError(w, newError(http.StatusBadRequest, CodeParamInvalid, err))
			return
		}

		filter = &kind
	}

	names := s.eng.Registry.Names()
	list := make([]objectInfo, 0, len(names))

	for _, name := range names {
		obj, err := s.eng.Registry.Resolve(name)
		if err != nil {
			writeError(w, classify(err))
			return
		}

		if filter != nil && obj.Kind() != *filter {
			continue
		}

		list = append(list, objectInfo{
			Name:        obj.Name(),
			Kind:        obj.Kind().String(),
			Description: obj.Description(),
			Fields:      obj.Len(),
			Nested:      obj.NestedRefs(),
		})
	}

	writeJSON(w, http.StatusOK, list)
}

// derive builds the schema for the request's object, appending tenant
// metadata fields and the fields listed in ?custom=.
func (s *Server) derive(r *http.Request) (*schema.Schema, error) {
	name := mux.Vars(r)["name"]
	q := r.URL.Query()

	var custom []schema.CustomField

	if s.eng.Metadata != nil {
		tenant := q.Get("tenant")
		if tenant == "" {
			tenant = s.cfg.Tenant
		}

		if tenant != "" {
			fields, err := s.eng.Metadata.CustomFields(r.Context(), tenant, name)
			if err != nil {
				return nil, newError(http.StatusBadGateway, CodeMetadata, err)
			}

			custom = append(custom, fields...)
		}
	}

	extra, err := schema.ParseCustomFields(common.SplitList(q.Get("custom")))
	if err != nil {
		return nil, err
	}

	return s.eng.Deriver.Derive(name, append(custom, extra...)...)
}

type fieldView struct {
	Name     string      `json:"name"`
	Label    string      `json:"label"`
	Type     string      `json:"type"`
	Nullable bool        `json:"nullable"`
	Update   bool        `json:"update"`
	Select   bool        `json:"select"`
	Custom   bool        `json:"custom"`
	Fields   []fieldView `json:"fields,omitempty"`
}

type schemaView struct {
	Object     string             `json:"object"`
	Fields     []fieldView        `json:"fields"`
	Collisions []schema.Collision `json:"collisions,omitempty"`
}

func viewFields(s *schema.Schema) []fieldView {
	out := make([]fieldView, len(s.Fields))

	for i := range s.Fields {
		f := &s.Fields[i]
		out[i] = fieldView{
			Name:     f.Name,
			Label:    f.Label,
			Type:     f.TypeString(),
			Nullable: f.Nullable,
			Update:   f.Writable,
			Select:   f.Selectable,
			Custom:   f.Custom,
		}

		if f.Nested != nil {
			out[i].Fields = viewFields(f.Nested)
		}
	}

	return out
}

func (s *Server) getSchema(w http.ResponseWriter, r *http.Request) {
	sc, err := s.derive(r)
	if err != nil {
		writeError(w, classify(err))
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, http.StatusOK, schemaView{
			Object:     sc.Object,
			Fields:     viewFields(sc),
			Collisions: sc.Collisions,
		})

	case "jsonschema":
		doc, err := sc.JSONSchema()
		if err != nil {
			writeError(w, classify(err))
			return
		}

		w.Header().Set("Content-Type", "application/schema+json")
		w.WriteHeader(http.StatusOK)
		w.Write(doc)

	default:
		writeError(w, newError(http.StatusBadRequest, CodeParamInvalid,
			fmt.Errorf("unsupported format %q", format)))
	}
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, newError(http.StatusRequestEntityTooLarge, CodeBodyInvalid, err)
		}

		return nil, newError(http.StatusBadRequest, CodeBodyInvalid, err)
	}

	if !json.Valid(body) {
		return nil, newError(http.StatusBadRequest, CodeBodyInvalid, errors.New("request body is not valid JSON"))
	}

	return body, nil
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	sc, err := s.derive(r)
	if err != nil {
		writeError(w, classify(err))
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		writeError(w, classify(err))
		return
	}

	rec, err := s.eng.Converter.FromJSON(body, sc)
	if err != nil {
		writeError(w, classify(err))
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) payload(w http.ResponseWriter, r *http.Request) {
	sc, err := s.derive(r)
	if err != nil {
		writeError(w, classify(err))
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		writeError(w, classify(err))
		return
	}

	rec, err := s.eng.Converter.FromJSON(body, sc)
	if err != nil {
		writeError(w, classify(err))
		return
	}

	out, err := s.eng.Converter.ToJSON(rec, sc, common.SplitList(r.URL.Query().Get("null"))...)
	if err != nil {
		writeError(w, classify(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	buf, err := json.Marshal(v)
	if err != nil {
		writeError(w, newError(http.StatusInternalServerError, CodeServer, err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf)
}

func writeError(w http.ResponseWriter, e *Error) {
	if e.Status >= http.StatusInternalServerError {
		log.Errorf("request failed: %v", e)
	}

	buf, _ := json.Marshal(e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	w.Write(buf)
}
