package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

//go:embed schema.sql
var schemaSQL string

// Migrate aplica el esquema. Todas las sentencias son IF NOT EXISTS, así que
// es seguro correrlo en cada deploy.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}

type seedCompany struct {
	name           string
	category       string
	description    string
	commissionRate decimal.Decimal
	commissionType string
	phoneNumber    string
	trackingURL    string
}

// Catálogo inicial de empresas partner del mercado japonés.
var seedCompanies = []seedCompany{
	{
		name:           "楽天モバイル",
		category:       "通信",
		description:    "楽天の携帯電話サービス",
		commissionRate: decimal.NewFromInt(5000),
		commissionType: "fixed",
		phoneNumber:    "0120-123-456",
		trackingURL:    "https://rakuten-mobile.example.com",
	},
	{
		name:           "Amazon Prime",
		category:       "サブスクリプション",
		description:    "Amazonのプライム会員サービス",
		commissionRate: decimal.NewFromInt(1000),
		commissionType: "fixed",
		phoneNumber:    "050-1234-5678",
		trackingURL:    "https://amazon-prime.example.com",
	},
	{
		name:           "クレジットカードA",
		category:       "金融",
		description:    "年会費無料のクレジットカード",
		commissionRate: decimal.NewFromInt(8000),
		commissionType: "fixed",
		phoneNumber:    "0120-987-654",
		trackingURL:    "https://credit-card-a.example.com",
	},
	{
		name:           "オンライン英会話",
		category:       "教育",
		description:    "マンツーマンオンライン英会話",
		commissionRate: decimal.NewFromInt(15),
		commissionType: "percentage",
		phoneNumber:    "050-9876-5432",
		trackingURL:    "https://online-english.example.com",
	},
	{
		name:           "プログラミングスクール",
		category:       "教育",
		description:    "エンジニア育成スクール",
		commissionRate: decimal.NewFromInt(20),
		commissionType: "percentage",
		phoneNumber:    "0120-555-666",
		trackingURL:    "https://programming-school.example.com",
	},
}

// Seed carga el usuario admin y el catálogo de empresas si aún no existen.
// Solo inserta sobre tablas vacías: nunca pisa datos de producción.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var adminCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE username = 'admin'`).Scan(&adminCount); err != nil {
		return fmt.Errorf("verificar admin: %w", err)
	}
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashear password admin: %w", err)
		}
		now := time.Now()
		_, err = pool.Exec(ctx, `
			INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New().String(), "admin", "admin@example.com", string(hash), now, now,
		)
		if err != nil {
			return fmt.Errorf("insertar admin: %w", err)
		}
	}

	var companyCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&companyCount); err != nil {
		return fmt.Errorf("verificar companies: %w", err)
	}
	if companyCount > 0 {
		return nil
	}
	for _, c := range seedCompanies {
		_, err := pool.Exec(ctx, `
			INSERT INTO companies (id, name, category, description, commission_rate, commission_type, phone_number, tracking_url, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'active', now(), now())`,
			uuid.New().String(), c.name, c.category, c.description,
			c.commissionRate, c.commissionType, c.phoneNumber, c.trackingURL,
		)
		if err != nil {
			return fmt.Errorf("insertar empresa %s: %w", c.name, err)
		}
	}
	return nil
}
