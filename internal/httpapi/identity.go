package httpapi

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/agendalabs/meetingd/internal/domain/account"
	"github.com/agendalabs/meetingd/internal/errors"
	"github.com/agendalabs/meetingd/internal/storage"
)

type contextKey string

const ctxAccountKey contextKey = "account"

func withAccount(ctx context.Context, acct *account.Account) context.Context {
	if acct == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxAccountKey, acct)
}

func accountFromContext(ctx context.Context) *account.Account {
	if acct, ok := ctx.Value(ctxAccountKey).(*account.Account); ok {
		return acct
	}
	return nil
}

// identity resolves the X-User-Id header to a root account and stashes it in
// the request context. A missing header leaves the request anonymous; the
// services decide which operations tolerate that. A header that does not
// resolve to a self-owned account is rejected outright.
func (h *handler) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/metrics", "/healthz":
			next.ServeHTTP(w, r)
			return
		}

		raw := r.Header.Get("X-User-Id")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, errors.AuthenticationRequired())
			return
		}
		acct, err := h.stores.Accounts.GetAccount(r.Context(), id)
		if err != nil {
			if stderrors.Is(err, storage.ErrNotFound) {
				writeError(w, errors.AuthenticationRequired())
				return
			}
			writeError(w, err)
			return
		}
		if !acct.Root() {
			writeError(w, errors.AuthenticationRequired())
			return
		}

		next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), &acct)))
	})
}
