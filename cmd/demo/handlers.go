package main

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sesskit/pkg/csrf"
	"github.com/dmitrymomot/sesskit/pkg/logger"
	"github.com/dmitrymomot/sesskit/pkg/session"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head><meta name="csrf-token" content="{{.Token}}"><title>sesskit demo</title></head>
<body>
{{with .Status}}<p class="status">{{.}}</p>{{end}}
<form method="post" action="/messages">
  {{.Field}}
  <input name="message" placeholder="Say something">
  <button type="submit">Send</button>
</form>
<p>Visits in this session: {{.Visits}}</p>
{{with .Messages}}<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
<form method="post" action="/logout">{{.Field}}<button type="submit">Forget me</button></form>
</body>
</html>`))

type page struct {
	Token    string
	Field    template.HTML
	Status   string
	Visits   int
	Messages []string
}

func showForm(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := session.MustFromContext(ctx)

		visits, _ := sess.GetInt("visits")
		visits++
		sess.Set("visits", visits)

		token, _ := csrf.TokenFromContext(ctx)
		status, _ := sess.GetFlash("status", "").(string)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, page{
			Token:    token,
			Field:    csrf.TemplateField(ctx),
			Status:   status,
			Visits:   visits,
			Messages: messages(sess),
		}); err != nil {
			log.ErrorContext(ctx, "render page", logger.Error(err))
		}
	}
}

func postMessage(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext(r.Context())

	msg := strings.TrimSpace(r.PostFormValue("message"))
	if msg == "" {
		sess.Flash("status", "Message is empty.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess.Set("messages", append(messages(sess), msg))
	sess.Flash("status", "Message saved.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func logout(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := session.MustFromContext(ctx).Destroy(ctx); err != nil {
			log.ErrorContext(ctx, "destroy session", logger.Error(err))
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// receiveWebhook is excluded from CSRF checks; third parties cannot carry a token.
func receiveWebhook(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.InfoContext(r.Context(), "webhook received",
			logger.Event("webhook"),
			slog.String("source", chi.URLParam(r, "source")),
		)
		w.WriteHeader(http.StatusAccepted)
	}
}

// messages reads the stored list whether it round-tripped through gob
// as []string or []any.
func messages(sess *session.Session) []string {
	switch v := sess.Get("messages", nil).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
