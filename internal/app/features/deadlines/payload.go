// internal/app/features/deadlines/payload.go
package deadlines

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
)

// textField is a JSON string that may be absent or of the wrong type.
// A wrong type is kept as a field error instead of failing the decode.
type textField struct {
	Value   string
	Present bool
	Invalid bool
}

func (f *textField) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	f.Present = true
	if err := json.Unmarshal(b, &f.Value); err != nil {
		f.Value = ""
		f.Invalid = true
	}
	return nil
}

func formText(r *http.Request, key string) textField {
	vals, ok := r.PostForm[key]
	if !ok || len(vals) == 0 {
		return textField{}
	}
	return textField{Value: vals[0], Present: true}
}

// ptr returns nil for an absent or unreadable value.
func (f textField) ptr() *string {
	if !f.Present || f.Invalid {
		return nil
	}
	v := f.Value
	return &v
}

// payload is the accepted request body. "uuid" is the historical name of
// createdBy and is still honoured.
type payload struct {
	Deadline         textField `json:"deadline"`
	Info             textField `json:"info"`
	ShortLectureName textField `json:"shortLectureName"`
	Group            textField `json:"group"`
	CreatedBy        textField `json:"createdBy"`
	UUID             textField `json:"uuid"`
}

// readPayload accepts JSON or url-encoded form bodies.
func readPayload(w http.ResponseWriter, r *http.Request) (payload, error) {
	var p payload
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" {
		r.Body = http.MaxBytesReader(w, r.Body, apiresp.MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return p, apiresp.ErrBadBody
		}
		p.Deadline = formText(r, "deadline")
		p.Info = formText(r, "info")
		p.ShortLectureName = formText(r, "shortLectureName")
		p.Group = formText(r, "group")
		p.CreatedBy = formText(r, "createdBy")
		p.UUID = formText(r, "uuid")
		return p, nil
	}
	err := apiresp.DecodeJSON(w, r, &p)
	return p, err
}

// malformed collects the named fields that arrived with the wrong type.
func malformed(fields map[string]textField) map[string]string {
	var out map[string]string
	for name, f := range fields {
		if !f.Invalid {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		if name == "deadline" {
			out[name] = "deadline must be a valid date"
		} else {
			out[name] = name + " must be text"
		}
	}
	return out
}

func (p payload) input() schedule.DeadlineInput {
	createdBy, createdByName := p.CreatedBy, "createdBy"
	if !createdBy.Present {
		createdBy, createdByName = p.UUID, "uuid"
	}
	return schedule.DeadlineInput{
		Deadline:         p.Deadline.Value,
		Info:             p.Info.Value,
		ShortLectureName: p.ShortLectureName.ptr(),
		Group:            p.Group.ptr(),
		CreatedBy:        createdBy.ptr(),
		Malformed: malformed(map[string]textField{
			"deadline":         p.Deadline,
			"info":             p.Info,
			"shortLectureName": p.ShortLectureName,
			"group":            p.Group,
			createdByName:      createdBy,
		}),
	}
}

func (p payload) update() schedule.DeadlineUpdate {
	return schedule.DeadlineUpdate{
		Deadline:         p.Deadline.Value,
		ShortLectureName: p.ShortLectureName.ptr(),
		Group:            p.Group.ptr(),
		Malformed: malformed(map[string]textField{
			"deadline":         p.Deadline,
			"shortLectureName": p.ShortLectureName,
			"group":            p.Group,
		}),
	}
}
