package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

type Kind string

const (
	Text   Kind = "text"
	Number Kind = "number"
	Date   Kind = "date"
	Select Kind = "select"
	File   Kind = "file"
)

// Field describes one input of a create form.
type Field struct {
	Name     string             `json:"name"`
	Label    string             `json:"label"`
	Kind     Kind               `json:"kind"`
	Required bool               `json:"required"`
	Options  []string           `json:"options,omitempty"`
	Default  string             `json:"default,omitempty"`
	Validate func(string) error `json:"-"`
}

type Form struct {
	Fields []Field `json:"fields"`
}

// Multipart reports whether submitting the form needs multipart/form-data.
func (f *Form) Multipart() bool {
	for _, field := range f.Fields {
		if field.Kind == File {
			return true
		}
	}
	return false
}

// Errors maps a field name to a kebab-case message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, ", ")
}

// Submission is a bound, validated form.
type Submission struct {
	Values map[string]string
	Files  map[string][]*multipart.FileHeader
	form   *Form
}

const maxMemory = 32 << 20

// Bind reads the request body (JSON, urlencoded or multipart) and validates it
// against the field descriptors.
func (f *Form) Bind(r *http.Request) (*Submission, error) {
	values, files, err := read(r)
	if err != nil {
		return nil, err
	}
	return f.Validate(values, files)
}

// Validate checks raw values against the field descriptors. Unknown keys are dropped.
func (f *Form) Validate(values map[string]string, files map[string][]*multipart.FileHeader) (*Submission, error) {
	sub := &Submission{
		Values: map[string]string{},
		Files:  map[string][]*multipart.FileHeader{},
		form:   f,
	}
	errs := Errors{}

	for _, field := range f.Fields {
		if field.Kind == File {
			fh := files[field.Name]
			if len(fh) == 0 {
				if field.Required {
					errs[field.Name] = "missing-" + field.Name
				}
				continue
			}
			sub.Files[field.Name] = fh
			continue
		}

		v := strings.TrimSpace(values[field.Name])
		if v == "" {
			v = field.Default
		}
		if v == "" {
			if field.Required {
				errs[field.Name] = "missing-" + field.Name
			}
			continue
		}

		if err := checkKind(field, v); err != nil {
			errs[field.Name] = err.Error()
			continue
		}

		if field.Validate != nil {
			if err := field.Validate(v); err != nil {
				errs[field.Name] = err.Error()
				continue
			}
		}

		sub.Values[field.Name] = v
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return sub, nil
}

func checkKind(field Field, v string) error {
	switch field.Kind {
	case Number:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("invalid-%s-number", field.Name)
		}
	case Date:
		if _, err := time.Parse(dateFormat, v); err != nil {
			return fmt.Errorf("invalid-%s(yyyy-mm-dd)", field.Name)
		}
	case Select:
		for _, o := range field.Options {
			if o == v {
				return nil
			}
		}
		return fmt.Errorf("invalid-%s-option", field.Name)
	}
	return nil
}

// Set overrides a value after validation, for derived fields.
func (s *Submission) Set(name, value string) {
	s.Values[name] = value
}

// Float returns a numeric field; validation already guaranteed it parses.
func (s *Submission) Float(name string) float64 {
	v, _ := strconv.ParseFloat(s.Values[name], 64)
	return v
}

// JSON converts the values to a JSON object, numbers as numbers.
func (s *Submission) JSON() map[string]interface{} {
	out := make(map[string]interface{}, len(s.Values))
	kinds := map[string]Kind{}
	if s.form != nil {
		for _, f := range s.form.Fields {
			kinds[f.Name] = f.Kind
		}
	}

	for k, v := range s.Values {
		if kinds[k] == Number {
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				out[k] = n
				continue
			}
		}
		out[k] = v
	}
	return out
}

var errUnsupportedBody = errors.New("unsupported-content-type")

func read(r *http.Request) (map[string]string, map[string][]*multipart.FileHeader, error) {
	ct := r.Header.Get("Content-Type")
	values := map[string]string{}

	switch {
	case strings.HasPrefix(ct, "application/json"):
		var body map[string]interface{}
		if r.Body == nil {
			return nil, nil, errors.New("invalid request")
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, nil, errors.New("invalid request")
		}
		for k, v := range body {
			switch x := v.(type) {
			case nil:
			case string:
				values[k] = x
			case float64:
				values[k] = strconv.FormatFloat(x, 'f', -1, 64)
			default:
				values[k] = fmt.Sprint(x)
			}
		}
		return values, nil, nil

	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, nil, err
		}
		for k, v := range r.MultipartForm.Value {
			if len(v) > 0 {
				values[k] = v[0]
			}
		}
		return values, r.MultipartForm.File, nil

	case strings.HasPrefix(ct, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			return nil, nil, err
		}
		for k, v := range r.PostForm {
			if len(v) > 0 {
				values[k] = v[0]
			}
		}
		return values, nil, nil
	}

	return nil, nil, errUnsupportedBody
}
