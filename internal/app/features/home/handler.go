package home

import (
	"net/http"

	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
)

// Welcome is the greeting served at the API root.
const Welcome = "welcome to the wuw api v0"

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – welcome                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func ServeRoot(w http.ResponseWriter, r *http.Request) {
	apiresp.Message(w, http.StatusOK, Welcome, nil)
}
