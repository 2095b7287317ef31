package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // driver PostgreSQL
)

// DriverName é o nome do driver registrado pelo lib/pq.
const DriverName = "postgres"

// NewPostgresDB inicializa e configura o pool de conexões com o PostgreSQL.
// Retorna a conexão *sql.DB pronta para uso (o goose trabalha diretamente com ela).
func NewPostgresDB(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	// Garante que as credenciais e o servidor estão corretos
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	// Configuração do Connection Pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return db, nil
}

// WrapSQLX embrulha o *sql.DB para os repositórios que usam sqlx (Select/Get em structs com tags db).
func WrapSQLX(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, DriverName)
}
