package configs

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// =======================
// CONFIG
// =======================

// Config reúne toda la configuración del proceso, validada una sola vez al
// arranque y pasada por inyección de dependencias a los handlers.
type Config struct {
	MercadoPagoAccessToken string
	PublicBaseURL          string

	// Variante Airtable (requerida solo cuando STORE_BACKEND=airtable)
	AirtableAPIKey              string
	AirtableBaseID              string
	AirtableTablaContribuyentes string
	AirtableTablaPagos          string

	StoreBackend string // "postgres" | "airtable"
	CORSOrigins  []string
}

// UsaAirtable indica si el backend de datos configurado es el tabular hosteado.
func (c *Config) UsaAirtable() bool { return c.StoreBackend == "airtable" }

// =======================
// ENV LOADER
// =======================

// Cargar lee el .env (si existe), valida las variables obligatorias y
// devuelve la configuración. Falla rápido: sin token de MercadoPago o sin
// URL pública el proceso no puede operar.
func Cargar() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No se encontró .env, se usan las ENV del sistema")
	} else {
		log.Println("✅ .env cargado correctamente")
	}

	cfg := &Config{
		MercadoPagoAccessToken: MustEnv("MERCADOPAGO_ACCESS_TOKEN"),
		PublicBaseURL:          strings.TrimRight(MustEnv("PUBLIC_BASE_URL"), "/"),
		StoreBackend:           GetEnv("STORE_BACKEND", "postgres"),
		CORSOrigins: strings.Split(GetEnv("CORS_ORIGINS",
			"http://localhost:5173,http://127.0.0.1:5173"), ","),
	}

	if cfg.UsaAirtable() {
		cfg.AirtableAPIKey = MustEnv("AIRTABLE_API_KEY")
		cfg.AirtableBaseID = MustEnv("AIRTABLE_BASE_ID")
		cfg.AirtableTablaContribuyentes = MustEnv("AIRTABLE_TABLE_CONTRIBUYENTES")
		cfg.AirtableTablaPagos = MustEnv("AIRTABLE_TABLE_PAGOS")
	}

	return cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// MustEnv corta el arranque si falta una variable obligatoria.
func MustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		log.Fatalf("❌ %s no está configurada en el entorno", key)
	}
	return value
}

// =======================
// GORM LOGGER CUSTOM
// =======================

type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
