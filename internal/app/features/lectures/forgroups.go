// internal/app/features/lectures/forgroups.go
package lectures

import (
	"mime"
	"net/http"
	"strings"

	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
	"github.com/dalemusser/wuwapi/internal/app/system/reqtime"
	"github.com/dalemusser/wuwapi/internal/app/system/timeouts"
)

type groupsBody struct {
	Groups []string `json:"groups"`
}

// GroupsFromRequest collects the requested groups from repeated or
// comma-separated ?groups= values and from the body, either JSON
// {"groups": [...]} or a url-encoded form with groups or groups[] keys.
func GroupsFromRequest(w http.ResponseWriter, r *http.Request) ([]string, error) {
	var groups []string
	for _, v := range r.URL.Query()["groups"] {
		groups = append(groups, strings.Split(v, ",")...)
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" {
		r.Body = http.MaxBytesReader(w, r.Body, apiresp.MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, apiresp.ErrBadBody
		}
		for _, key := range []string{"groups", "groups[]"} {
			for _, v := range r.PostForm[key] {
				groups = append(groups, strings.Split(v, ",")...)
			}
		}
		return groups, nil
	}

	if r.ContentLength != 0 {
		var body groupsBody
		if err := apiresp.DecodeJSON(w, r, &body); err != nil {
			return nil, err
		}
		groups = append(groups, body.Groups...)
	}
	return groups, nil
}

// ServeForGroups handles GET|POST /lecturesForGroups. With ?upcoming=true
// only lectures that have not ended at ?at= (default now) are returned.
func (h *Handler) ServeForGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := GroupsFromRequest(w, r)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list lectures for groups")
	defer cancel()

	if r.URL.Query().Get("upcoming") == "true" {
		now, err := reqtime.Resolve(r, h.Now)
		if err != nil {
			apiresp.Error(w, r, h.Log, err)
			return
		}
		list, err := h.Facade.UpcomingLecturesForGroups(ctx, groups, now)
		if err != nil {
			apiresp.Error(w, r, h.Log, err)
			return
		}
		apiresp.OK(w, list)
		return
	}

	list, err := h.Facade.LecturesForGroups(ctx, groups)
	if err != nil {
		apiresp.Error(w, r, h.Log, err)
		return
	}
	apiresp.OK(w, list)
}
