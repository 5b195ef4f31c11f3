package app

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/Djolex15/stripy-sub000/internal/adapters/email"
	"github.com/Djolex15/stripy-sub000/internal/adapters/geoip"
	"github.com/Djolex15/stripy-sub000/internal/adapters/httpserver"
	"github.com/Djolex15/stripy-sub000/internal/adapters/qrgen"
	"github.com/Djolex15/stripy-sub000/internal/adapters/repo/postgres"
	"github.com/Djolex15/stripy-sub000/internal/domain"
	"github.com/Djolex15/stripy-sub000/internal/usecase"
	"github.com/Djolex15/stripy-sub000/internal/views"
)

type App struct {
	DB   *gorm.DB
	Tmpl *template.Template

	OrderUC   *usecase.OrderUC
	PromoUC   *usecase.PromoUC
	MetricsUC *usecase.MetricsUC
	QRUC      *usecase.QRUC
	ReviewUC  *usecase.ReviewUC

	Geo         *geoip.Client
	Mailer      domain.Mailer
	OAuthConfig *oauth2.Config
}

func NewApp(db *gorm.DB) (*App, error) {
	orderRepo := postgres.NewOrderRepo(db)
	promoRepo := postgres.NewPromoRepo(db)
	metricsRepo := postgres.NewMetricsRepo(db)
	qrRepo := postgres.NewQRCodeRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	mailer := email.NewMailer()

	promoUC := &usecase.PromoUC{Promos: promoRepo, Orders: orderRepo}
	app := &App{
		DB:        db,
		OrderUC:   &usecase.OrderUC{Orders: orderRepo, Promos: promoUC, Mailer: mailer},
		PromoUC:   promoUC,
		MetricsUC: &usecase.MetricsUC{Metrics: metricsRepo, Orders: orderRepo, Promos: promoRepo},
		QRUC:      &usecase.QRUC{QRCodes: qrRepo, Images: qrgen.New(), BaseURL: baseURL},
		ReviewUC:  &usecase.ReviewUC{Reviews: reviewRepo},
		Geo:       geoip.New(),
		Mailer:    mailer,
	}

	googleID := os.Getenv("GOOGLE_CLIENT_ID")
	googleSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if googleID != "" && googleSecret != "" {
		app.OAuthConfig = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	funcMap := template.FuncMap{
		"money": func(cents int64, c domain.Currency) string {
			return fmt.Sprintf("%.2f %s", float64(cents)/100.0, c)
		},
		"eur": func(v float64) string { return fmt.Sprintf("%.2f EUR", v) },
	}

	appEnv := strings.ToLower(os.Getenv("APP_ENV"))
	isDev := appEnv == "" || appEnv == "development" || appEnv == "dev"

	var tmpl *template.Template
	var err error
	if isDev {
		tmpl, err = template.New("layout").Funcs(funcMap).ParseGlob("internal/views/*.html")
	} else {
		tmpl, err = template.New("layout").Funcs(funcMap).ParseFS(views.FS, "*.html")
	}
	if err != nil {
		return nil, err
	}
	app.Tmpl = tmpl

	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Tmpl, a.OrderUC, a.PromoUC, a.MetricsUC, a.QRUC, a.ReviewUC, a.Geo, a.Mailer, a.OAuthConfig)
}

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&domain.Order{}, &domain.OrderItem{},
		&domain.PromoCode{}, &domain.PromoCodeUsage{},
		&domain.BusinessMetrics{}, &domain.InvestorData{},
		&domain.QRCode{}, &domain.Review{},
	); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_promo_code ON orders(promo_code)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)").Error
	_ = a.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_promo_code_usages_order ON promo_code_usages(order_id)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_reviews_product_id ON reviews(product_id)").Error

	if os.Getenv("STRIPY_SEED") == "1" {
		seedPromoCodes(a.DB)
	}
	return nil
}

// seedPromoCodes provisions a couple of demo codes for local development.
func seedPromoCodes(db *gorm.DB) {
	codes := []struct {
		code, creator, password string
		discount                int
	}{
		{"STRIPY10", "House code", "stripy-dev", 10},
		{"MILICA15", "Milica", "milica-dev", 15},
	}
	for _, c := range codes {
		hash, err := usecase.HashPassword(c.password)
		if err != nil {
			continue
		}
		p := domain.PromoCode{Code: c.code, Discount: c.discount, CreatorName: c.creator, PasswordHash: hash, CreatedAt: time.Now()}
		if err := db.Create(&p).Error; err != nil {
			log.Debug().Err(err).Str("code", c.code).Msg("seed promo code")
		}
	}
}
