package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"

	"golang.org/x/oauth2"
)

type authResult struct {
	token *oauth2.Token
	err   error
}

// Authorize runs the interactive browser consent flow. It opens a local
// listening port for the OAuth2 redirect, sends the user to the consent
// page, and blocks until sign-in completes or ctx is cancelled. The
// obtained token is saved to the store before returning.
func (tm *TokenManager) Authorize(ctx context.Context) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", tm.callbackPort))
	if err != nil {
		return nil, fmt.Errorf("unable to open local callback port: %w", err)
	}
	defer listener.Close()

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	// The redirect must target the port actually bound, so copy the
	// config rather than mutating the shared one.
	config := *tm.config
	config.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", listener.Addr().(*net.TCPAddr).Port)

	authURL := config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))

	results := make(chan authResult, 1)
	deliver := func(r authResult) {
		select {
		case results <- r:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state did not match", http.StatusBadRequest)
			deliver(authResult{err: fmt.Errorf("authorization state mismatch")})
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			deliver(authResult{err: fmt.Errorf("authorization response carried no code")})
			return
		}

		token, err := config.Exchange(r.Context(), code)
		if err != nil {
			http.Error(w, "failed to exchange token: "+err.Error(), http.StatusInternalServerError)
			deliver(authResult{err: fmt.Errorf("failed to exchange authorization code: %w", err)})
			return
		}

		fmt.Fprintln(w, "Authentication complete. You can close this window.")
		deliver(authResult{token: token})
	})

	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	defer server.Shutdown(context.Background())

	if openBrowser(authURL) {
		fmt.Println("Opening your browser to complete sign-in...")
	} else {
		fmt.Printf("Go to the following link in your browser:\n%s\n", authURL)
	}

	select {
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		if err := tm.store.Save(res.token); err != nil {
			tm.logger.Warn("failed to save token", "error", err)
		} else {
			tm.logger.Info("successfully obtained and saved OAuth2 token")
		}
		return res.token, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("authorization cancelled: %w", ctx.Err())
	}
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("unable to generate state token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// openBrowser launches the platform URL handler; a false return means
// the caller should print the URL for manual navigation.
func openBrowser(url string) bool {
	launchers := map[string]string{
		"linux":  "xdg-open",
		"darwin": "open",
	}

	tool, ok := launchers[runtime.GOOS]
	if !ok {
		return false
	}
	path, err := exec.LookPath(tool)
	if err != nil {
		return false
	}
	return exec.Command(path, url).Start() == nil
}
