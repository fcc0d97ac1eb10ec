package server

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = "file:" + filepath.Join(t.TempDir(), "auth.db") + "?_pragma=foreign_keys(1)"
	c.LogLevel = "error"
	return c
}

func TestBootstrap_SQLite(t *testing.T) {
	ctx := context.Background()

	db, accounts, err := Bootstrap(ctx, testConfig(t))
	require.NoError(t, err)
	defer db.Close()

	u, err := accounts.Register(ctx, "alice", "a@x.com", "secret1")
	require.NoError(t, err)

	tok, err := accounts.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	me, err := accounts.CurrentUser(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)
}

func TestBootstrap_Errors(t *testing.T) {
	ctx := context.Background()

	c := testConfig(t)
	c.DatabaseDriver = "mysql"
	_, _, err := Bootstrap(ctx, c)
	assert.Error(t, err)

	c = testConfig(t)
	c.PasswordScheme = "md5"
	_, _, err = Bootstrap(ctx, c)
	assert.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	c := testConfig(t)
	c.EndpointAddrHTTP = addr

	ctx, cancel := context.WithCancel(context.Background())
	app, err := NewApp(ctx, c)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
