package cli

import (
	"bufio"
	"io"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/client/client"
	"github.com/dmitrijs2005/taskhub/internal/client/config"
	"github.com/dmitrijs2005/taskhub/internal/client/session"
)

// App carries what every command needs once flags are parsed.
type App struct {
	config *config.Config
	api    client.Client
	bridge *session.Bridge
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

func newApp(cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	api := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout)
	bridge, err := session.NewBridge(api, session.Options{
		Secret:    cfg.SessionSecret,
		MaxAge:    cfg.SessionMaxAge,
		UpdateAge: cfg.SessionUpdateAge,
		Secure:    cfg.SecureCookies,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		config: cfg,
		api:    api,
		bridge: bridge,
		reader: bufio.NewReader(in),
		out:    out,
		now:    time.Now,
	}, nil
}

// resume loads the stored session, writing back a re-issued value. A session
// whose API token has lapsed is reported as errAccessExpired.
func (a *App) resume() (session.Session, error) {
	value, err := readSession(a.config.SessionFile)
	if err != nil {
		return session.Session{}, err
	}
	sess, refreshed, err := a.bridge.Resume(value)
	if err != nil {
		return session.Session{}, err
	}
	if sess.AccessExpired(a.now()) {
		return session.Session{}, errAccessExpired
	}
	if refreshed != value {
		if err := writeSession(a.config.SessionFile, refreshed); err != nil {
			return session.Session{}, err
		}
	}
	return sess, nil
}

// prompt returns value when set, otherwise asks for it.
func (a *App) prompt(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return GetSimpleText(a.reader, label, a.out)
}
