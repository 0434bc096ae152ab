package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samin124/portfolio/internal/analytics"
	"github.com/samin124/portfolio/internal/auth"
	"github.com/samin124/portfolio/internal/contact"
	"github.com/samin124/portfolio/internal/mail"
	"github.com/samin124/portfolio/internal/mail/mailmocks"
	"github.com/samin124/portfolio/internal/store"
)

func TestAdmin_Login(t *testing.T) {
	env := newTestEnv(t, "")
	testCases := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "email field", body: `{"email":"` + adminUser + `","password":"` + adminPass + `"}`, wantCode: http.StatusOK},
		{name: "username field", body: `{"username":"` + adminUser + `","password":"` + adminPass + `"}`, wantCode: http.StatusOK},
		{name: "wrong password", body: `{"email":"` + adminUser + `","password":"admin123"}`, wantCode: http.StatusUnauthorized},
		{name: "wrong user", body: `{"email":"root","password":"` + adminPass + `"}`, wantCode: http.StatusUnauthorized},
		{name: "empty", body: `{}`, wantCode: http.StatusUnauthorized},
		{name: "malformed", body: `{"email":`, wantCode: http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/admin/login", "", tc.body)
			require.Equal(t, tc.wantCode, resp.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			if tc.wantCode != http.StatusOK {
				assert.NotContains(t, body, "token")
				assert.Contains(t, body, "error")
				return
			}
			assert.Equal(t, true, body["success"])
			expiry, err := time.Parse(time.RFC3339, body["expiry"].(string))
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().Add(auth.TokenTTL), expiry, time.Minute)

			subject, err := auth.NewVerifier(tokenSecret).Verify(body["token"].(string))
			require.NoError(t, err)
			assert.Equal(t, adminUser, subject)
		})
	}
}

func TestAdmin_TokenAllowsWrite(t *testing.T) {
	env := newTestEnv(t, `{"contact":{"email":"old@example.com","phone":"","location":""}}`)
	token := env.login(t)

	resp := env.do(t, http.MethodPut, "/api/portfolio/contact", token, `{"email":"new@example.com","phone":"1","location":"Dhaka"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	got := env.do(t, http.MethodGet, "/api/portfolio/contact", "", "")
	assert.JSONEq(t, `{"email":"new@example.com","phone":"1","location":"Dhaka"}`, got.Body.String())
}

type fakeStats struct {
	stats *analytics.Stats
	err   error
}

func (f fakeStats) Stats(context.Context) (*analytics.Stats, error) {
	return f.stats, f.err
}

func TestAdmin_Stats(t *testing.T) {
	newRouter := func(stats StatsSource) *testEnv {
		path := t.TempDir() + "/portfolio.json"
		r := NewRouter(Deps{
			Store:    store.NewFileStore(path),
			Auth:     auth.NewIssuer(auth.Credentials{Username: adminUser, Password: adminPass}, tokenSecret),
			Verifier: auth.NewVerifier(tokenSecret),
			Contact:  contact.NewRelay(mail.Unconfigured{}, "owner@example.com"),
			Stats:    stats,
		})
		return &testEnv{router: r, path: path}
	}

	t.Run("requires token", func(t *testing.T) {
		env := newRouter(fakeStats{stats: &analytics.Stats{}})
		resp := env.do(t, http.MethodGet, "/api/admin/stats", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("reports stats", func(t *testing.T) {
		env := newRouter(fakeStats{stats: &analytics.Stats{
			TotalVisitors:  3,
			UniqueVisitors: 2,
			TopPaths:       []analytics.PathStat{{Path: "/", Visits: 3}},
			RecentVisitors: []analytics.Visit{},
		}})
		resp := env.do(t, http.MethodGet, "/api/admin/stats", env.login(t), "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{
			"total_visitors": 3,
			"unique_visitors": 2,
			"visitors_today": 0,
			"visitors_this_week": 0,
			"top_paths": [{"path": "/", "visits": 3}],
			"recent_visitors": []
		}`, resp.Body.String())
	})

	t.Run("query failure", func(t *testing.T) {
		env := newRouter(fakeStats{err: errors.New("database is locked")})
		resp := env.do(t, http.MethodGet, "/api/admin/stats", env.login(t), "")
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		env := newRouter(nil)
		resp := env.do(t, http.MethodGet, "/api/admin/stats", env.login(t), "")
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestContact_Submit(t *testing.T) {
	full := `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello there"}`
	testCases := []struct {
		name     string
		body     string
		mock     func(s *mailmocks.MockSender)
		wantCode int
		wantBody string
	}{
		{
			name: "sent",
			body: full,
			mock: func(s *mailmocks.MockSender) {
				s.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mail.Message) error {
					assert.Equal(t, "owner@example.com", msg.To)
					assert.Equal(t, "ada@example.com", msg.ReplyTo)
					return nil
				})
			},
			wantCode: http.StatusOK,
			wantBody: `{"success":true,"message":"Email sent successfully"}`,
		},
		{
			name: "transport failure",
			body: full,
			mock: func(s *mailmocks.MockSender) {
				s.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("535 authentication failed"))
			},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Failed to send email"}`,
		},
		{
			name:     "missing name",
			body:     `{"email":"ada@example.com","subject":"Hi","message":"Hello"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"All fields are required"}`,
		},
		{
			name:     "empty email",
			body:     `{"name":"Ada","email":"","subject":"Hi","message":"Hello"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"All fields are required"}`,
		},
		{
			name:     "missing subject",
			body:     `{"name":"Ada","email":"ada@example.com","message":"Hello"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"All fields are required"}`,
		},
		{
			name:     "blank message",
			body:     `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"   "}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"All fields are required"}`,
		},
		{
			name:     "not json",
			body:     `name=Ada`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"All fields are required"}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sender := mailmocks.NewMockSender(ctrl)
			if tc.mock != nil {
				tc.mock(sender)
			} else {
				sender.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)
			}
			r := NewRouter(Deps{
				Store:    store.NewFileStore(t.TempDir() + "/portfolio.json"),
				Auth:     auth.NewIssuer(auth.Credentials{}, ""),
				Verifier: auth.NewVerifier(""),
				Contact:  contact.NewRelay(sender, "owner@example.com"),
			})
			env := &testEnv{router: r}
			resp := env.do(t, http.MethodPost, "/api/contact", "", tc.body)
			assert.Equal(t, tc.wantCode, resp.Code)
			assert.JSONEq(t, tc.wantBody, resp.Body.String())
		})
	}
}

func TestContact_UnconfiguredRelay(t *testing.T) {
	env := newTestEnv(t, "")
	resp := env.do(t, http.MethodPost, "/api/contact", "",
		`{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.True(t, strings.Contains(resp.Body.String(), "Failed to send email"))
}
