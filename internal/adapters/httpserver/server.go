package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/oauth2"

	"github.com/Djolex15/stripy-sub000/internal/adapters/geoip"
	"github.com/Djolex15/stripy-sub000/internal/domain"
	"github.com/Djolex15/stripy-sub000/internal/usecase"
)

type Server struct {
	mux     *http.ServeMux
	tmpl    *template.Template
	orders  *usecase.OrderUC
	promos  *usecase.PromoUC
	metrics *usecase.MetricsUC
	qr      *usecase.QRUC
	reviews *usecase.ReviewUC
	geo     *geoip.Client
	mailer  domain.Mailer

	oauthCfg     *oauth2.Config
	adminAllowed map[string]struct{}
	secret       []byte
}

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func New(t *template.Template, o *usecase.OrderUC, p *usecase.PromoUC, m *usecase.MetricsUC, q *usecase.QRUC, rev *usecase.ReviewUC, geo *geoip.Client, mailer domain.Mailer, oauthCfg *oauth2.Config) http.Handler {
	s := &Server{
		mux: http.NewServeMux(), tmpl: t,
		orders: o, promos: p, metrics: m, qr: q, reviews: rev,
		geo: geo, mailer: mailer, oauthCfg: oauthCfg,
	}

	allowed := map[string]struct{}{}
	if raw := os.Getenv("ADMIN_ALLOWED_EMAILS"); raw != "" {
		for _, e := range strings.Split(raw, ",") {
			e = strings.ToLower(strings.TrimSpace(e))
			if e != "" {
				allowed[e] = struct{}{}
			}
		}
	}
	s.adminAllowed = allowed
	sec := os.Getenv("JWT_SECRET")
	if sec == "" {
		sec = os.Getenv("SECRET_KEY")
	}
	if sec == "" {
		sec = "dev-admin-secret"
	}
	s.secret = []byte(sec)

	s.routes()
	return Chain(s.mux,
		RateLimit(120, map[string]int{
			"/api/checkout":       10,
			"/api/order-webhook":  30,
			"/api/promo/validate": 30,
			"/api/reviews":        20,
		}),
		CORS,
		SecurityHeaders,
		Gzip,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.Handle("/public/", http.StripPrefix("/public/", http.FileServer(http.Dir("public"))))

	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/product/", s.handleProduct)
	s.mux.HandleFunc("/cart", s.handleCart)
	s.mux.HandleFunc("/cart/update", s.handleCartUpdate)
	s.mux.HandleFunc("/cart/remove", s.handleCartRemove)
	s.mux.HandleFunc("/checkout", s.handleCheckout)
	s.mux.HandleFunc("/order/", s.handleOrderConfirmation)
	s.mux.HandleFunc("/lang", s.handleLang)

	s.mux.HandleFunc("/api/checkout", s.apiCheckout)
	s.mux.HandleFunc("/api/order-webhook", s.apiOrderWebhook)
	s.mux.HandleFunc("/api/promo/validate", s.apiPromoValidate)
	s.mux.HandleFunc("/api/reviews", s.apiReviews)
	s.mux.HandleFunc("/api/qr-code", s.apiQRCode)
	s.mux.HandleFunc("/api/qr-code/", s.apiQRCodeByID)
	s.mux.HandleFunc("/api/email-test", s.apiEmailTest)
	s.mux.HandleFunc("/qr/", s.handleQRScan)

	s.mux.HandleFunc("/creator/login", s.handleCreatorLogin)
	s.mux.HandleFunc("/creator/logout", s.handleCreatorLogout)
	s.mux.HandleFunc("/creator", s.handleCreatorDashboard)

	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)
	s.mux.HandleFunc("/admin/auth", s.handleAdminAuth)
	s.mux.HandleFunc("/admin/logout", s.handleAdminLogout)
	s.mux.HandleFunc("/admin", s.handleAdminDashboard)
	s.mux.HandleFunc("/admin/orders", s.handleAdminOrders)
	s.mux.HandleFunc("/admin/orders/export", s.handleAdminOrdersExport)
	s.mux.HandleFunc("/admin/investor", s.handleAdminInvestor)
	s.mux.HandleFunc("/admin/qr", s.handleAdminQR)
}

// --- storefront ---

// lang picks the storefront language: cookie first, then a geo-IP lookup on
// the first visit. Serbia gets "sr", everyone else "en".
func (s *Server) lang(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie("lang"); err == nil && (c.Value == "en" || c.Value == "sr") {
		return c.Value
	}
	lang := "en"
	if s.geo != nil {
		if cc := s.geo.CountryFor(r.Context(), clientIP(r)); cc == "RS" {
			lang = "sr"
		}
	}
	http.SetCookie(w, &http.Cookie{Name: "lang", Value: lang, Path: "/", MaxAge: 60 * 60 * 24 * 365})
	return lang
}

func currencyForLang(lang string) domain.Currency {
	if lang == "sr" {
		return domain.CurrencyRSD
	}
	return domain.CurrencyEUR
}

func (s *Server) handleLang(w http.ResponseWriter, r *http.Request) {
	l := r.URL.Query().Get("l")
	if l != "en" && l != "sr" {
		l = "en"
	}
	http.SetCookie(w, &http.Cookie{Name: "lang", Value: l, Path: "/", MaxAge: 60 * 60 * 24 * 365})
	ref := r.Referer()
	if ref == "" {
		ref = "/"
	}
	http.Redirect(w, r, ref, http.StatusFound)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	lang := s.lang(w, r)
	s.render(w, "home.html", map[string]any{
		"Products": domain.Catalog,
		"Lang":     lang,
		"Currency": currencyForLang(lang),
	})
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/product/")
	p := domain.FindProduct(id)
	if p == nil {
		http.NotFound(w, r)
		return
	}
	lang := s.lang(w, r)
	reviews := s.reviews.ListByProduct(r.Context(), p.ID)
	s.render(w, "product.html", map[string]any{
		"Product":  p,
		"Reviews":  reviews,
		"Lang":     lang,
		"Currency": currencyForLang(lang),
		"Added":    r.URL.Query().Get("added") == "1",
	})
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	lang := s.lang(w, r)
	currency := currencyForLang(lang)
	switch r.Method {
	case http.MethodGet:
		lines, total := aggregateCart(readCart(r), currency)
		s.render(w, "cart.html", map[string]any{
			"Lines": lines, "Total": total, "Lang": lang, "Currency": currency,
		})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", http.StatusBadRequest)
			return
		}
		id := r.FormValue("product_id")
		if domain.FindProduct(id) == nil {
			http.Error(w, "product", http.StatusNotFound)
			return
		}
		writeCart(w, addToCart(readCart(r), id))
		http.Redirect(w, r, "/product/"+id+"?added=1", http.StatusFound)
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	id := r.FormValue("product_id")
	op := r.FormValue("op")
	cart := readCart(r)
	agg := map[string]int{}
	for _, it := range cart.Items {
		if it.Qty > 0 {
			agg[it.ProductID] += it.Qty
		}
	}
	cur := agg[id]
	switch op {
	case "inc":
		cur++
	case "dec":
		cur--
	case "set":
		if q, err := strconv.Atoi(r.FormValue("qty")); err == nil {
			cur = q
		}
	}
	if cur < 0 {
		cur = 0
	}
	agg[id] = cur
	next := cartPayload{}
	for pid, q := range agg {
		if q > 0 {
			next.Items = append(next.Items, cartItem{ProductID: pid, Qty: q})
		}
	}
	writeCart(w, next)
	http.Redirect(w, r, "/cart", http.StatusFound)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	id := r.FormValue("product_id")
	cart := readCart(r)
	kept := []cartItem{}
	for _, it := range cart.Items {
		if it.ProductID != id {
			kept = append(kept, it)
		}
	}
	cart.Items = kept
	writeCart(w, cart)
	http.Redirect(w, r, "/cart", http.StatusFound)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	lang := s.lang(w, r)
	currency := currencyForLang(lang)
	switch r.Method {
	case http.MethodGet:
		lines, total := aggregateCart(readCart(r), currency)
		if len(lines) == 0 {
			http.Redirect(w, r, "/cart", http.StatusFound)
			return
		}
		s.render(w, "checkout.html", map[string]any{
			"Lines": lines, "Total": total, "Lang": lang, "Currency": currency,
		})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", http.StatusBadRequest)
			return
		}
		cart := readCart(r)
		req := usecase.SubmitOrderRequest{
			Email:         r.FormValue("email"),
			Name:          r.FormValue("name"),
			Phone:         r.FormValue("phone"),
			Address:       r.FormValue("address"),
			City:          r.FormValue("city"),
			PostalCode:    r.FormValue("postal_code"),
			Country:       r.FormValue("country"),
			Language:      lang,
			Currency:      string(currency),
			PaymentMethod: r.FormValue("payment_method"),
			PromoCode:     r.FormValue("promo_code"),
		}
		for _, it := range cart.Items {
			req.Items = append(req.Items, usecase.SubmitItem{ProductID: it.ProductID, Quantity: it.Qty})
		}
		o, err := s.orders.Submit(r.Context(), req)
		if err != nil {
			log.Warn().Err(err).Msg("checkout rejected")
			http.Redirect(w, r, "/checkout?err=1", http.StatusFound)
			return
		}
		writeCart(w, cartPayload{})
		http.Redirect(w, r, "/order/"+o.ID.String(), http.StatusFound)
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleOrderConfirmation(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/order/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	o, err := s.orders.Orders.FindByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.render(w, "order.html", map[string]any{"Order": o, "Lang": s.lang(w, r)})
}

// --- JSON API ---

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req usecase.SubmitOrderRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 16384)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	o, err := s.orders.Submit(r.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownProduct) {
			writeError(w, http.StatusBadRequest, "unknown product")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusCreated, map[string]any{
		"order_id":   o.ID,
		"total":      o.TotalCents,
		"currency":   o.Currency,
		"promo_code": o.PromoCode,
	})
}

func (s *Server) apiOrderWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var evt struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 4096)).Decode(&evt); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := uuid.Parse(evt.OrderID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order_id")
		return
	}
	var status domain.PaymentStatus
	switch evt.Status {
	case "paid":
		status = domain.PaymentStatusPaid
	case "failed":
		status = domain.PaymentStatusFailed
	case "refunded":
		status = domain.PaymentStatusRefunded
	default:
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}
	o, err := s.orders.HandleWebhook(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		log.Error().Err(err).Str("order_id", evt.OrderID).Msg("order webhook")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order_id": o.ID, "status": o.PaymentStatus})
}

func (s *Server) apiPromoValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := s.promos.Validate(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{"valid": false})
			return
		}
		log.Error().Err(err).Msg("promo validate")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":    true,
		"code":     p.Code,
		"discount": p.Discount,
	})
}

func (s *Server) apiReviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		productID := r.URL.Query().Get("productId")
		if productID == "" {
			writeError(w, http.StatusBadRequest, "productId required")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"reviews": s.reviews.ListByProduct(r.Context(), productID)})
	case http.MethodPost:
		var req usecase.AddReviewRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 8192)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		rev, err := s.reviews.Add(r.Context(), req)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, rev)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) apiQRCode(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		list, err := s.qr.List(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("qr list")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"qr_codes": list})
	case http.MethodPost:
		var req struct {
			URL  string `json:"url"`
			Name string `json:"name"`
		}
		if err := json.NewDecoder(io.LimitReader(r.Body, 2048)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		q, err := s.qr.Generate(r.Context(), req.URL, req.Name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, q)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) apiQRCodeByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/qr-code/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.qr.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "qr code not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("qr delete")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (s *Server) handleQRScan(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/qr/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	target, err := s.qr.Scan(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) apiEmailTest(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		To string `json:"to"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !emailRe.MatchString(strings.TrimSpace(req.To)) {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}
	if err := s.mailer.SendTest(r.Context(), strings.TrimSpace(req.To)); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sent": true})
}

// --- creator dashboard ---

func (s *Server) handleCreatorLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if s.creatorCode(r) != "" {
			http.Redirect(w, r, "/creator", http.StatusFound)
			return
		}
		s.render(w, "creator_login.html", map[string]any{})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", http.StatusBadRequest)
			return
		}
		p, err := s.promos.Login(r.Context(), r.FormValue("code"), r.FormValue("password"))
		if err != nil {
			s.render(w, "creator_login.html", map[string]any{"Error": "Invalid code or password"})
			return
		}
		tok, err := s.issueToken(p.Code, roleCreator, 12*time.Hour)
		if err != nil {
			http.Error(w, "token", http.StatusInternalServerError)
			return
		}
		s.setSessionCookie(w, r, "creator_token", tok, 12*time.Hour)
		http.Redirect(w, r, "/creator", http.StatusFound)
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCreatorLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w, r, "creator_token")
	http.Redirect(w, r, "/creator/login", http.StatusFound)
}

func (s *Server) handleCreatorDashboard(w http.ResponseWriter, r *http.Request) {
	code := s.creatorCode(r)
	if code == "" {
		http.Redirect(w, r, "/creator/login", http.StatusFound)
		return
	}
	stats, err := s.promos.CreatorStats(r.Context(), code)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("creator stats")
		http.Error(w, "err", http.StatusInternalServerError)
		return
	}
	s.render(w, "creator.html", map[string]any{"Stats": stats})
}

// --- admin ---

func (s *Server) handleAdminAuth(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if s.isAdminSession(r) {
			http.Redirect(w, r, "/admin", http.StatusFound)
			return
		}
		s.render(w, "admin_auth.html", map[string]any{"GoogleEnabled": s.oauthCfg != nil})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", http.StatusBadRequest)
			return
		}
		user := strings.TrimSpace(r.FormValue("user"))
		pass := strings.TrimSpace(r.FormValue("pass"))
		cfgUser := os.Getenv("ADMIN_USER")
		cfgPass := os.Getenv("ADMIN_PASS")
		if cfgUser == "" || cfgPass == "" {
			log.Error().Msg("ADMIN_USER/ADMIN_PASS not configured")
			http.Error(w, "config", http.StatusInternalServerError)
			return
		}
		if user != cfgUser || pass != cfgPass {
			http.Error(w, "credentials", http.StatusUnauthorized)
			return
		}
		tok, err := s.issueToken(user+"@local", roleAdmin, 6*time.Hour)
		if err != nil {
			http.Error(w, "token", http.StatusInternalServerError)
			return
		}
		s.setSessionCookie(w, r, "admin_token", tok, 6*time.Hour)
		http.Redirect(w, r, "/admin", http.StatusFound)
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w, r, "admin_token")
	http.Redirect(w, r, "/admin/auth", http.StatusFound)
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.Error(w, "oauth not configured", http.StatusInternalServerError)
		return
	}
	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: state, Path: "/", MaxAge: 300, HttpOnly: true})
	http.Redirect(w, r, s.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.Error(w, "oauth not configured", http.StatusInternalServerError)
		return
	}
	q := r.URL.Query()
	c, _ := r.Cookie("oauth_state")
	if c == nil || c.Value == "" || c.Value != q.Get("state") {
		http.Error(w, "state", http.StatusBadRequest)
		return
	}
	tok, err := s.oauthCfg.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		log.Error().Err(err).Msg("oauth exchange")
		http.Error(w, "oauth", http.StatusBadRequest)
		return
	}
	client := s.oauthCfg.Client(r.Context(), tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil || resp.StatusCode != http.StatusOK {
		log.Error().Err(err).Msg("oauth userinfo")
		http.Error(w, "userinfo", http.StatusBadRequest)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var info struct {
		Email string `json:"email"`
	}
	_ = json.Unmarshal(body, &info)
	email := strings.ToLower(strings.TrimSpace(info.Email))
	if email == "" {
		http.Error(w, "email", http.StatusBadRequest)
		return
	}
	if _, ok := s.adminAllowed[email]; !ok {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	jwtTok, err := s.issueToken(email, roleAdmin, 6*time.Hour)
	if err != nil {
		http.Error(w, "token", http.StatusInternalServerError)
		return
	}
	s.setSessionCookie(w, r, "admin_token", jwtTok, 6*time.Hour)
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if !s.isAdminSession(r) {
		http.Redirect(w, r, "/admin/auth", http.StatusFound)
		return
	}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", http.StatusBadRequest)
			return
		}
		initial, _ := strconv.ParseFloat(r.FormValue("initial_investment"), 64)
		costs, _ := strconv.ParseFloat(r.FormValue("operating_costs"), 64)
		investorPct, _ := strconv.ParseFloat(r.FormValue("investor_percentage"), 64)
		affiliatePct, _ := strconv.ParseFloat(r.FormValue("affiliate_percentage"), 64)
		invDate, err := time.Parse("2006-01-02", r.FormValue("investment_date"))
		if err != nil {
			invDate = time.Now()
		}
		if _, err := s.metrics.SaveInputs(r.Context(), initial, costs, investorPct, affiliatePct, invDate); err != nil {
			http.Error(w, "err", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	m, err := s.metrics.Recompute(r.Context())
	if err != nil {
		// Recompute already logged; show the dashboard empty rather than a 500.
		m = &domain.BusinessMetrics{}
	}
	s.render(w, "admin_dashboard.html", map[string]any{"Metrics": m})
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	if !s.isAdminSession(r) {
		http.Redirect(w, r, "/admin/auth", http.StatusFound)
		return
	}
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	var status *domain.PaymentStatus
	if r.URL.Query().Get("paid") == "1" {
		st := domain.PaymentStatusPaid
		status = &st
	}
	list, total, err := s.orders.Orders.List(r.Context(), status, page, 20)
	if err != nil {
		http.Error(w, "err", http.StatusInternalServerError)
		return
	}
	pages := (int(total) + 19) / 20
	if pages == 0 {
		pages = 1
	}
	s.render(w, "admin_orders.html", map[string]any{
		"Orders": list, "Page": page, "Pages": pages, "FilterPaid": status != nil,
	})
}

func (s *Server) handleAdminOrdersExport(w http.ResponseWriter, r *http.Request) {
	if !s.isAdminSession(r) {
		http.Redirect(w, r, "/admin/auth", http.StatusFound)
		return
	}
	const layoutIn = "2006-01-02"
	to := time.Now()
	if ds := r.URL.Query().Get("to"); ds != "" {
		if t, err := time.Parse(layoutIn, ds); err == nil {
			to = t
		}
	}
	from := to.AddDate(0, 0, -29)
	if ds := r.URL.Query().Get("from"); ds != "" {
		if t, err := time.Parse(layoutIn, ds); err == nil {
			from = t
		}
	}
	if from.After(to) {
		from, to = to, from
	}
	orders, err := s.orders.Orders.ListInRange(r.Context(), from, to)
	if err != nil {
		http.Error(w, "err", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)
	headers := []string{"ID", "Created", "Name", "Email", "Country", "Total", "Currency", "Total EUR", "Promo", "Payment", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, o := range orders {
		promo := ""
		if o.PromoCode != nil {
			promo = *o.PromoCode
		}
		values := []any{
			o.ID.String(),
			o.CreatedAt.Format(time.RFC3339),
			o.Name,
			o.Email,
			o.Country,
			float64(o.TotalCents) / 100.0,
			string(o.Currency),
			o.TotalEUR(),
			promo,
			o.PaymentMethod,
			string(o.PaymentStatus),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=orders_%s_%s.xlsx", from.Format(layoutIn), to.Format(layoutIn)))
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("xlsx export")
	}
}

func (s *Server) handleAdminInvestor(w http.ResponseWriter, r *http.Request) {
	if !s.isAdminSession(r) {
		http.Redirect(w, r, "/admin/auth", http.StatusFound)
		return
	}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", http.StatusBadRequest)
			return
		}
		initial, _ := strconv.ParseFloat(r.FormValue("initial_investment"), 64)
		ownership, _ := strconv.ParseFloat(r.FormValue("ownership_percentage"), 64)
		perOrder, _ := strconv.ParseFloat(r.FormValue("return_per_order"), 64)
		invDate, err := time.Parse("2006-01-02", r.FormValue("investment_date"))
		if err != nil {
			invDate = time.Now()
		}
		d, err := s.metrics.Metrics.GetInvestor(r.Context())
		if err != nil {
			d = &domain.InvestorData{}
		}
		d.InvestorName = strings.TrimSpace(r.FormValue("investor_name"))
		d.InitialInvestment = initial
		d.OwnershipPercentage = ownership
		d.ReturnPerOrder = perOrder
		d.InvestmentDate = invDate
		if err := s.metrics.SaveInvestor(r.Context(), d); err != nil {
			http.Error(w, "err", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/admin/investor", http.StatusFound)
		return
	}
	report, err := s.metrics.InvestorReport(r.Context())
	if err != nil {
		http.Error(w, "err", http.StatusInternalServerError)
		return
	}
	s.render(w, "admin_investor.html", map[string]any{"Report": report})
}

func (s *Server) handleAdminQR(w http.ResponseWriter, r *http.Request) {
	if !s.isAdminSession(r) {
		http.Redirect(w, r, "/admin/auth", http.StatusFound)
		return
	}
	list, err := s.qr.List(r.Context())
	if err != nil {
		http.Error(w, "err", http.StatusInternalServerError)
		return
	}
	s.render(w, "admin_qr.html", map[string]any{"QRCodes": list})
}

// --- helpers ---

func (s *Server) render(w http.ResponseWriter, name string, data map[string]any) {
	if _, ok := data["Year"]; !ok {
		data["Year"] = time.Now().Year()
	}
	if _, ok := data["Lang"]; !ok {
		data["Lang"] = "en"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
		http.Error(w, "tpl", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
