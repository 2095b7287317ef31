package sweetrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"sweetshop/internal/domain"
	apperror "sweetshop/internal/errors"
	"sweetshop/internal/pkg/logger"
)

// Códigos SQLSTATE do PostgreSQL tratados aqui.
const (
	pgCheckViolation     = "23514"
	pgInvalidTextRepr    = "22P02"
	sweetColumns         = `id, name, category, price, quantity, version, created_at, updated_at`
	sweetNotFoundMessage = "Doce com ID %s não existe na base de dados."
)

// SweetRepository é o store de doces sobre o PostgreSQL.
type SweetRepository struct {
	DB        *sqlx.DB
	DBTimeout time.Duration
	logger    logger.Logger
	now       func() time.Time
}

// NewSweetRepository cria e retorna uma nova instância do Repositório de Doces.
func NewSweetRepository(db *sqlx.DB, dbTimeout time.Duration, logger logger.Logger) *SweetRepository {
	return &SweetRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// FindByID busca um doce pelo ID.
func (r *SweetRepository) FindByID(ctx context.Context, id string) (domain.Sweet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var sweet domain.Sweet
	err := r.DB.GetContext(ctxTimeout, &sweet, `SELECT `+sweetColumns+` FROM sweets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
		r.logger.Debug("Doce não encontrado.", map[string]interface{}{"id": id})
		return domain.Sweet{}, apperror.NewNotFoundError(fmt.Sprintf(sweetNotFoundMessage, id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar doce no DB.", err)
		return domain.Sweet{}, apperror.NewDBError("Falha ao buscar doce", err)
	}
	return sweet, nil
}

// Save insere o doce quando ele não tem ID; caso contrário atualiza a linha existente.
// A atualização usa controle de concorrência otimista pela coluna version.
func (r *SweetRepository) Save(ctx context.Context, sweet domain.Sweet) (domain.Sweet, error) {
	if sweet.ID == "" {
		return r.insert(ctx, sweet)
	}
	return r.update(ctx, sweet)
}

func (r *SweetRepository) insert(ctx context.Context, sweet domain.Sweet) (domain.Sweet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	now := r.now()
	sweet.ID = uuid.NewString()
	sweet.Version = 1
	sweet.CreatedAt = now
	sweet.UpdatedAt = now

	query := `
        INSERT INTO sweets (id, name, category, price, quantity, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + sweetColumns

	var stored domain.Sweet
	err := r.DB.GetContext(ctxTimeout, &stored, query,
		sweet.ID, sweet.Name, sweet.Category, sweet.Price, sweet.Quantity, sweet.Version, sweet.CreatedAt, sweet.UpdatedAt,
	)
	if err != nil {
		return domain.Sweet{}, r.translateWriteError("Falha ao inserir doce", err)
	}

	r.logger.Info("Doce inserido.", map[string]interface{}{"id": stored.ID, "name": stored.Name})
	return stored, nil
}

func (r *SweetRepository) update(ctx context.Context, sweet domain.Sweet) (domain.Sweet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE sweets
        SET name = $1, category = $2, price = $3, quantity = $4, version = version + 1, updated_at = $5
        WHERE id = $6 AND version = $7
        RETURNING ` + sweetColumns

	var stored domain.Sweet
	err := r.DB.GetContext(ctxTimeout, &stored, query,
		sweet.Name, sweet.Category, sweet.Price, sweet.Quantity, r.now(), sweet.ID, sweet.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		// Nenhuma linha: ou o doce sumiu ou a versão ficou desatualizada.
		var exists bool
		if exErr := r.DB.GetContext(ctxTimeout, &exists, `SELECT EXISTS(SELECT 1 FROM sweets WHERE id = $1)`, sweet.ID); exErr != nil {
			return domain.Sweet{}, apperror.NewDBError("Falha ao verificar existência do doce", exErr)
		}
		if !exists {
			return domain.Sweet{}, apperror.NewNotFoundError(fmt.Sprintf(sweetNotFoundMessage, sweet.ID))
		}
		r.logger.Warn("Falha no controle de concorrência otimista (OCC). Versão do registro desatualizada.", map[string]interface{}{
			"id":               sweet.ID,
			"expected_version": sweet.Version,
		})
		return domain.Sweet{}, apperror.NewConflictError("O doce foi modificado por outra operação. Tente novamente.")
	}
	if err != nil {
		return domain.Sweet{}, r.translateWriteError("Falha ao atualizar doce", err)
	}

	r.logger.Debug("Doce atualizado.", map[string]interface{}{"id": stored.ID, "quantity": stored.Quantity, "version": stored.Version})
	return stored, nil
}

// Delete remove o doce permanentemente.
func (r *SweetRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar doce no DB.", err)
		return apperror.NewDBError("Falha ao deletar doce", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rows == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf(sweetNotFoundMessage, id))
	}

	r.logger.Info("Doce deletado.", map[string]interface{}{"id": id})
	return nil
}

// FindAll lista todos os doces da loja.
func (r *SweetRepository) FindAll(ctx context.Context) ([]domain.Sweet, error) {
	return r.selectSweets(ctx, "Falha ao listar doces",
		`SELECT `+sweetColumns+` FROM sweets ORDER BY created_at, id`)
}

// FindAvailable lista os doces com estoque (quantity > 0).
func (r *SweetRepository) FindAvailable(ctx context.Context) ([]domain.Sweet, error) {
	return r.selectSweets(ctx, "Falha ao listar doces disponíveis",
		`SELECT `+sweetColumns+` FROM sweets WHERE quantity > 0 ORDER BY created_at, id`)
}

// FindOutOfStock lista os doces esgotados (quantity <= 0).
func (r *SweetRepository) FindOutOfStock(ctx context.Context) ([]domain.Sweet, error) {
	return r.selectSweets(ctx, "Falha ao listar doces esgotados",
		`SELECT `+sweetColumns+` FROM sweets WHERE quantity <= 0 ORDER BY created_at, id`)
}

// Search aplica os filtros opcionais; filtros nil são ignorados.
// name: substring sem diferenciar maiúsculas; category: igualdade sem diferenciar maiúsculas.
func (r *SweetRepository) Search(ctx context.Context, filter domain.SweetFilter) ([]domain.Sweet, error) {
	query := `
        SELECT ` + sweetColumns + `
        FROM sweets
        WHERE ($1::text IS NULL OR name ILIKE '%' || $1::text || '%')
          AND ($2::text IS NULL OR LOWER(category) = LOWER($2::text))
          AND ($3::float8 IS NULL OR price >= $3::float8)
          AND ($4::float8 IS NULL OR price <= $4::float8)
        ORDER BY created_at, id`

	return r.selectSweets(ctx, "Falha ao buscar doces", query,
		filter.Name, filter.Category, filter.MinPrice, filter.MaxPrice)
}

func (r *SweetRepository) selectSweets(ctx context.Context, failMsg, query string, args ...interface{}) ([]domain.Sweet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	sweets := []domain.Sweet{}
	if err := r.DB.SelectContext(ctxTimeout, &sweets, query, args...); err != nil {
		r.logger.Error(failMsg+" no DB.", err)
		return nil, apperror.NewDBError(failMsg, err)
	}
	return sweets, nil
}

// translateWriteError converte violações de constraint em erros de domínio.
func (r *SweetRepository) translateWriteError(msg string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgCheckViolation {
		r.logger.Warn("Constraint de doce violada.", map[string]interface{}{"constraint": pqErr.Constraint})
		return apperror.NewValidationError("O estoque do doce não pode ficar negativo e o preço não pode ser negativo.")
	}
	r.logger.Error(msg+" no DB.", err)
	return apperror.NewDBError(msg, err)
}

// isInvalidUUID detecta IDs que não são UUID (o PostgreSQL rejeita o cast).
func isInvalidUUID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgInvalidTextRepr
}
