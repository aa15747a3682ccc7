package forum

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/forumkit/errgate/core/apperr"
	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/health"
	"github.com/forumkit/errgate/core/response"
	"github.com/forumkit/errgate/core/router"
	"github.com/forumkit/errgate/middleware"
)

type topic struct {
	ID    int    `json:"tid"`
	CID   int    `json:"cid"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// topics is the demo content served by the forum routes.
var topics = map[int]topic{
	1: {ID: 1, CID: 1, Slug: "welcome", Title: "Welcome to the forum"},
	2: {ID: 2, CID: 2, Slug: "bug-reports", Title: "Reporting bugs"},
}

// movedTopics maps retired topic ids onto their replacements.
var movedTopics = map[int]int{3: 1}

var errDeliberate = errors.New("deliberate failure")

func registerRoutes(r router.Router[*router.Context], app *App) {
	rel := app.config.Errors.RelativePath

	r.Get("/", func(ctx *router.Context) handler.Response {
		return response.String(app.config.Errors.SiteTitle)
	})

	r.Get("/topic/{tid}/{slug}", func(ctx *router.Context) handler.Response {
		t, err := lookupTopic(ctx.Param("tid"), rel)
		if err != nil {
			return response.Error(err)
		}
		return response.String(t.Title)
	})

	r.Get("/category/{cid}/{slug}", func(ctx *router.Context) handler.Response {
		cid, err := strconv.Atoi(ctx.Param("cid"))
		if err != nil {
			return response.Error(apperr.New(http.StatusNotFound, "[[error:no-category]]"))
		}
		var titles []string
		for _, t := range topics {
			if t.CID == cid {
				titles = append(titles, t.Title)
			}
		}
		return response.JSON(titles)
	})

	r.Post("/topic/{tid}/reply", func(ctx *router.Context) handler.Response {
		if _, err := lookupTopic(ctx.Param("tid"), rel); err != nil {
			return response.Error(err)
		}
		return response.StringWithStatus("reply accepted", http.StatusCreated)
	})

	r.Get("/api/config", func(ctx *router.Context) handler.Response {
		return response.JSON(map[string]string{
			"relative_path": rel,
			"csrf_token":    middleware.CSRFToken(ctx),
		})
	})

	r.Get("/api/topic/{tid}", func(ctx *router.Context) handler.Response {
		t, err := lookupTopic(ctx.Param("tid"), rel)
		if err != nil {
			return response.Error(err)
		}
		return response.JSON(t)
	})

	r.Get("/api/fail", func(ctx *router.Context) handler.Response {
		return response.Error(errDeliberate)
	})

	r.Get("/health/live", health.Liveness[*router.Context])
	r.Get("/health/ready", health.Readiness[*router.Context](app.logger, app.health...))
}

// lookupTopic resolves a topic id. Retired ids raise a redirect signal
// towards their replacement.
func lookupTopic(raw, relativePath string) (topic, error) {
	tid, err := strconv.Atoi(raw)
	if err != nil {
		return topic{}, apperr.New(http.StatusNotFound, "[[error:no-topic]]")
	}
	if to, ok := movedTopics[tid]; ok {
		t := topics[to]
		return topic{}, apperr.Redirect(http.StatusPermanentRedirect, relativePath+"/topic/"+strconv.Itoa(t.ID)+"/"+t.Slug)
	}
	t, ok := topics[tid]
	if !ok {
		return topic{}, apperr.New(http.StatusNotFound, "[[error:no-topic]]")
	}
	return t, nil
}
