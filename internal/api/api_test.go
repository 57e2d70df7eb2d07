package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"utfpr.edu.br/menfin/internal/config"
	"utfpr.edu.br/menfin/internal/core"
	"utfpr.edu.br/menfin/internal/store"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func newTestServer(t *testing.T, ai *stubCompleter) *httptest.Server {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"

	db, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	board := core.NewStateBoard()
	ledger := core.NewLedgerService(db)
	handler := NewAPIHandler(
		core.NewAccountService(db),
		ledger,
		core.NewMentorService(db, ledger, ai, board),
		core.NewChatService(db, ai, core.NewChatQueue(4), board, 50),
	)
	srv := httptest.NewServer(NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	reg := core.RegisterRequest{Name: "Maria", Birthday: "20/05/1990", Email: "maria@example.com", Username: "maria", Password: "senha123"}
	if code := doJSON(t, srv, http.MethodPost, "/api/register", "", reg, nil); code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", code)
	}
	var res core.LoginResult
	if code := doJSON(t, srv, http.MethodPost, "/api/login", "", LoginRequest{Username: "maria", Password: "senha123"}, &res); code != http.StatusOK {
		t.Fatalf("login status = %d, want 200", code)
	}
	if res.Token == "" || res.OnboardingDone {
		t.Fatalf("login result = %+v, want token and onboarding pending", res)
	}
	return res.Token
}

func onboard(t *testing.T, srv *httptest.Server, token string) {
	t.Helper()
	req := core.OnboardingRequest{Remuneration: "4.500,00", NegativeCredit: "NO", HasDependents: "NO", KnowledgeLevel: "BEGINNER", MainGoal: "Guardar dinheiro", Readiness: "YES"}
	if code := doJSON(t, srv, http.MethodPost, "/api/onboarding", token, req, nil); code != http.StatusCreated {
		t.Fatalf("onboarding status = %d, want 201", code)
	}
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t, &stubCompleter{reply: "ok"})

	resp, err := http.Get(srv.URL + "/api/transactions")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", resp.StatusCode)
	}

	if code := doJSON(t, srv, http.MethodGet, "/api/transactions", "garbage", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", code)
	}
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t, &stubCompleter{})

	var body errorResponse
	code := doJSON(t, srv, http.MethodPost, "/api/register", "", core.RegisterRequest{Username: "x"}, &body)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", code)
	}
	if body.Fields["name"] == "" || body.Fields["password"] == "" {
		t.Errorf("fields = %v, want name and password errors", body.Fields)
	}
}

func TestLedgerRoutes(t *testing.T) {
	srv := newTestServer(t, &stubCompleter{})
	token := login(t, srv)

	tx := core.TransactionRequest{Kind: "EXPENSE", Amount: "120,50", Description: "Mercado", Category: "FOOD", Date: "10/03/2025"}
	var created store.Transaction
	if code := doJSON(t, srv, http.MethodPost, "/api/transactions", token, tx, &created); code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", code)
	}

	var dup errorResponse
	if code := doJSON(t, srv, http.MethodPost, "/api/transactions", token, tx, &dup); code != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate status = %d, want 422", code)
	}
	if dup.Message != core.MsgDuplicateTransaction {
		t.Errorf("duplicate message = %q", dup.Message)
	}

	var list []store.Transaction
	doJSON(t, srv, http.MethodGet, "/api/transactions?month=2025-03", token, nil, &list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("march list = %+v, want the created transaction", list)
	}
	list = nil
	doJSON(t, srv, http.MethodGet, "/api/transactions?month=2025-04", token, nil, &list)
	if len(list) != 0 {
		t.Errorf("april list has %d entries, want 0", len(list))
	}

	if code := doJSON(t, srv, http.MethodGet, "/api/transactions?month=03-2025", token, nil, nil); code != http.StatusBadRequest {
		t.Errorf("bad month status = %d, want 400", code)
	}

	path := "/api/transactions/" + strconv.FormatInt(created.ID, 10)
	if code := doJSON(t, srv, http.MethodDelete, path, token, nil, nil); code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", code)
	}
	if code := doJSON(t, srv, http.MethodGet, path, token, nil, nil); code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", code)
	}
}

func TestMentorRoutes(t *testing.T) {
	ai := &stubCompleter{reply: "Corte **delivery**."}
	srv := newTestServer(t, ai)
	token := login(t, srv)

	var missing errorResponse
	if code := doJSON(t, srv, http.MethodPost, "/api/mentor/ask", token, AskRequest{Question: "HOW_TO_SAVE"}, &missing); code != http.StatusConflict {
		t.Fatalf("ask without profile status = %d, want 409", code)
	}
	if missing.Message != core.MsgProfileMissing {
		t.Errorf("message = %q, want %q", missing.Message, core.MsgProfileMissing)
	}

	onboard(t, srv, token)

	var answer map[string]string
	if code := doJSON(t, srv, http.MethodPost, "/api/mentor/ask", token, AskRequest{Question: "HOW_TO_SAVE"}, &answer); code != http.StatusOK {
		t.Fatalf("ask status = %d, want 200", code)
	}
	if answer["answer"] != ai.reply {
		t.Errorf("answer = %q, want %q", answer["answer"], ai.reply)
	}

	var st core.State
	doJSON(t, srv, http.MethodGet, "/api/mentor/state/quick_question", token, nil, &st)
	if st.Status != core.StatusSuccess {
		t.Errorf("state = %+v, want success", st)
	}
	if code := doJSON(t, srv, http.MethodGet, "/api/mentor/state/nope", token, nil, nil); code != http.StatusNotFound {
		t.Errorf("unknown feature status = %d, want 404", code)
	}

	ai.err = errors.New("boom")
	var failed errorResponse
	if code := doJSON(t, srv, http.MethodPost, "/api/mentor/ask", token, AskRequest{Question: "Posso investir?"}, &failed); code != http.StatusBadGateway {
		t.Fatalf("failed ask status = %d, want 502", code)
	}
	if failed.Message == "" {
		t.Error("failed ask message is empty")
	}
}

func TestChatRoutes(t *testing.T) {
	ai := &stubCompleter{reply: "Olá!"}
	srv := newTestServer(t, ai)
	token := login(t, srv)
	onboard(t, srv, token)

	var reply store.ChatMessage
	if code := doJSON(t, srv, http.MethodPost, "/api/chat/messages", token, PostMessageRequest{Text: "Oi"}, &reply); code != http.StatusCreated {
		t.Fatalf("post status = %d, want 201", code)
	}
	if reply.Text != "Olá!" {
		t.Errorf("reply = %q", reply.Text)
	}

	var view core.ChatView
	doJSON(t, srv, http.MethodGet, "/api/chat", token, nil, &view)
	if len(view.Messages) != 2 || view.MentorTyping {
		t.Errorf("view = %+v, want two messages and no typing", view)
	}

	if code := doJSON(t, srv, http.MethodPost, "/api/chat/messages", token, PostMessageRequest{Text: "  "}, nil); code != http.StatusBadRequest {
		t.Errorf("blank message status = %d, want 400", code)
	}
}
