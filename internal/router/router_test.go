package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"fintrack/internal/config"
	"fintrack/internal/database"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		JWT:      config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
	return SetupRouter(cfg, db)
}

// postForm sends an urlencoded form, optionally with a bearer token.
func postForm(r http.Handler, path string, form url.Values, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Token        string  `json:"token"`
		Balance      float64 `json:"balance"`
		Transactions []struct {
			Amount   float64 `json:"amount"`
			Category string  `json:"category"`
			Type     string  `json:"type"`
		} `json:"transactions"`
		Categories []string `json:"categories"`
	} `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func registerAndLogin(t *testing.T, r http.Handler, email, password string) string {
	t.Helper()

	creds := url.Values{"email": {email}, "password": {password}}
	rec := postForm(r, "/register", creds, "")
	if rec.Code != http.StatusFound {
		t.Fatalf("register status = %d, want 302; body %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("register redirect = %q, want /login", loc)
	}

	rec = postForm(r, "/login", creds, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d; body %s", rec.Code, rec.Body.String())
	}
	token := decode(t, rec).Data.Token
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}

func addTransaction(t *testing.T, r http.Handler, token, amount, category, txType string) envelope {
	t.Helper()
	rec := postForm(r, "/index", url.Values{
		"add_amount":   {amount},
		"add_category": {category},
		"add_type":     {txType},
	}, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("add transaction status = %d; body %s", rec.Code, rec.Body.String())
	}
	return decode(t, rec)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupTestServer(t)

	creds := url.Values{"email": {"a@x.com"}, "password": {"secret1"}}
	if rec := postForm(r, "/register", creds, ""); rec.Code != http.StatusFound {
		t.Fatalf("first register status = %d, want 302", rec.Code)
	}
	rec := postForm(r, "/register", creds, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("second register status = %d, want 409; body %s", rec.Code, rec.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupTestServer(t)
	registerAndLogin(t, r, "a@x.com", "secret1")

	rec := postForm(r, "/login", url.Values{"email": {"a@x.com"}, "password": {"wrong99"}}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want 401", rec.Code)
	}
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	r := setupTestServer(t)

	for _, path := range []string{"/", "/index"} {
		rec := get(r, path, "")
		if rec.Code != http.StatusFound {
			t.Errorf("GET %s status = %d, want 302", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("GET %s redirect = %q, want /login", path, loc)
		}
	}
}

func TestFreshAccountHasZeroBalance(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "a@x.com", "secret1")

	rec := get(r, "/", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("home status = %d; body %s", rec.Code, rec.Body.String())
	}
	env := decode(t, rec)
	if env.Data.Balance != 0.0 {
		t.Errorf("balance = %v, want 0", env.Data.Balance)
	}
	if len(env.Data.Transactions) != 0 {
		t.Errorf("transactions = %d rows, want 0", len(env.Data.Transactions))
	}
}

func TestAddTransactionsUpdatesBalance(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "a@x.com", "secret1")

	env := addTransaction(t, r, token, "100", "Food", "income")
	if env.Data.Balance != 100.0 {
		t.Errorf("balance = %v, want 100", env.Data.Balance)
	}
	if len(env.Data.Transactions) != 1 || env.Data.Transactions[0].Category != "Food" {
		t.Errorf("transactions = %+v, want one Food row", env.Data.Transactions)
	}

	addTransaction(t, r, token, "50", "Food", "expense")
	env = addTransaction(t, r, token, "30", "Salary", "income")
	if env.Data.Balance != 80.0 {
		t.Errorf("balance = %v, want 80", env.Data.Balance)
	}
}

func TestAddTransactionValidation(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "a@x.com", "secret1")

	cases := []struct {
		name string
		form url.Values
	}{
		{"non-numeric amount", url.Values{"add_amount": {"abc"}, "add_category": {"Food"}, "add_type": {"income"}}},
		{"negative amount", url.Values{"add_amount": {"-5"}, "add_category": {"Food"}, "add_type": {"income"}}},
		{"unknown type", url.Values{"add_amount": {"5"}, "add_category": {"Food"}, "add_type": {"transfer"}}},
	}
	for _, tc := range cases {
		rec := postForm(r, "/index", tc.form, token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}

	// none of the rejected posts may have moved the balance
	rec := get(r, "/", token)
	if env := decode(t, rec); env.Data.Balance != 0.0 {
		t.Errorf("balance = %v after rejected posts, want 0", env.Data.Balance)
	}
}

func TestSearchFiltersByCategory(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "a@x.com", "secret1")
	addTransaction(t, r, token, "100", "Food", "income")
	addTransaction(t, r, token, "30", "Travel", "expense")

	rec := postForm(r, "/search", url.Values{"search_category": {"Food"}}, token)
	env := decode(t, rec)
	if len(env.Data.Transactions) != 1 || env.Data.Transactions[0].Category != "Food" {
		t.Errorf("search(Food) = %+v, want one Food row", env.Data.Transactions)
	}

	rec = postForm(r, "/search", url.Values{"search_category": {"all"}}, token)
	env = decode(t, rec)
	if len(env.Data.Transactions) != 2 {
		t.Errorf("search(all) = %d rows, want 2", len(env.Data.Transactions))
	}

	rec = postForm(r, "/search", url.Values{"search_amount": {"not-a-number"}}, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("search with bad amount status = %d, want 400", rec.Code)
	}
}

func TestSortEndpoint(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "a@x.com", "secret1")
	addTransaction(t, r, token, "100", "Food", "income")
	addTransaction(t, r, token, "30", "Travel", "expense")
	addTransaction(t, r, token, "70", "Books", "expense")

	rec := postForm(r, "/sort", url.Values{"sort_by": {"amount"}, "sort_order": {"asc"}}, token)
	env := decode(t, rec)
	for i := 1; i < len(env.Data.Transactions); i++ {
		if env.Data.Transactions[i].Amount < env.Data.Transactions[i-1].Amount {
			t.Errorf("amounts not non-decreasing: %+v", env.Data.Transactions)
		}
	}

	// sort by type ignores the requested direction
	rec = postForm(r, "/sort", url.Values{"sort_by": {"type"}, "sort_order": {"desc"}}, token)
	env = decode(t, rec)
	for i := 1; i < len(env.Data.Transactions); i++ {
		if env.Data.Transactions[i].Type < env.Data.Transactions[i-1].Type {
			t.Errorf("types not ascending despite desc request: %+v", env.Data.Transactions)
		}
	}
}

func TestClearHistoryKeepsBalance(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "a@x.com", "secret1")
	addTransaction(t, r, token, "100", "Food", "income")
	addTransaction(t, r, token, "20", "Food", "expense")

	rec := postForm(r, "/clear_history", url.Values{}, token)
	if rec.Code != http.StatusFound {
		t.Fatalf("clear_history status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/index" {
		t.Errorf("clear_history redirect = %q, want /index", loc)
	}

	env := decode(t, get(r, "/", token))
	if len(env.Data.Transactions) != 0 {
		t.Errorf("transactions = %d rows after clear, want 0", len(env.Data.Transactions))
	}
	if env.Data.Balance != 80.0 {
		t.Errorf("balance = %v after clear, want unchanged 80", env.Data.Balance)
	}
}

func TestCrossUserIsolationOverHTTP(t *testing.T) {
	r := setupTestServer(t)
	tokenA := registerAndLogin(t, r, "alice@x.com", "secret1")
	tokenB := registerAndLogin(t, r, "bob@x.com", "secret2")
	addTransaction(t, r, tokenA, "100", "Food", "income")

	env := decode(t, get(r, "/", tokenB))
	if len(env.Data.Transactions) != 0 {
		t.Errorf("bob sees %d of alice's transactions", len(env.Data.Transactions))
	}
	if env.Data.Balance != 0.0 {
		t.Errorf("bob balance = %v, want 0", env.Data.Balance)
	}
	if len(env.Data.Categories) != 0 {
		t.Errorf("bob sees alice's categories: %v", env.Data.Categories)
	}
}

func TestLegacyAddTransactionRedirects(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "a@x.com", "secret1")

	rec := postForm(r, "/add_transaction", url.Values{}, token)
	if rec.Code != http.StatusFound {
		t.Fatalf("add_transaction status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/index" {
		t.Errorf("add_transaction redirect = %q, want /index", loc)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "a@x.com", "secret1")

	rec := get(r, "/logout", token)
	if rec.Code != http.StatusFound {
		t.Fatalf("logout status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("logout redirect = %q, want /login", loc)
	}

	// the old token must be unusable afterwards
	rec = get(r, "/", token)
	if rec.Code != http.StatusFound {
		t.Errorf("home with revoked token status = %d, want redirect 302", rec.Code)
	}
}

func TestExportCSV(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "a@x.com", "secret1")
	addTransaction(t, r, token, "100", "Food", "income")

	rec := get(r, "/export/csv", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d; body %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Type,Category,Amount,Date") {
		t.Errorf("csv missing header: %q", body)
	}
	if !strings.Contains(body, "income,Food,100.00") {
		t.Errorf("csv missing transaction row: %q", body)
	}
}
