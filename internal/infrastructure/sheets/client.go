// Package sheets реализует внешний табличный sink зеркала парка
// поверх Google Sheets API.
package sheets

import (
	"context"
	"errors"
	"fmt"

	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/pkg/logger"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client - интерфейс табличного sink. Зеркало работает в режиме полной
// замены: Clear, затем AppendRows одним проходом.
type Client interface {
	// Clear очищает рабочий лист
	Clear(ctx context.Context) error

	// AppendRows записывает строки начиная с первой ячейки листа
	AppendRows(ctx context.Context, rows [][]interface{}) error

	// Health проверяет доступность таблицы и права сервисного аккаунта
	Health(ctx context.Context) error
}

// Config конфигурация подключения к Google Sheets
type Config struct {
	CredentialsFile string
	SpreadsheetID   string
	WorksheetName   string
}

type sheetsClient struct {
	service       *sheetsapi.Service
	spreadsheetID string
	worksheet     string
	logger        logger.Logger
}

// NewClient создает клиент Google Sheets с сервисным аккаунтом
func NewClient(ctx context.Context, cfg Config, logger logger.Logger) (Client, error) {
	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &sheetsClient{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.WorksheetName,
		logger:        logger,
	}, nil
}

func (c *sheetsClient) Clear(ctx context.Context) error {
	_, err := c.service.Spreadsheets.Values.
		Clear(c.spreadsheetID, c.worksheet, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).
		Do()

	return c.mapError(err)
}

func (c *sheetsClient) AppendRows(ctx context.Context, rows [][]interface{}) error {
	valueRange := &sheetsapi.ValueRange{Values: rows}

	_, err := c.service.Spreadsheets.Values.
		Update(c.spreadsheetID, c.worksheet+"!A1", valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()

	return c.mapError(err)
}

func (c *sheetsClient) Health(ctx context.Context) error {
	_, err := c.service.Spreadsheets.
		Get(c.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).
		Do()

	return c.mapError(err)
}

// mapError переводит отказы API в доменную ошибку недоступности sink:
// просроченные учетные данные, отозванный доступ и удаленная таблица
// для пайплайна равнозначны
func (c *sheetsClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403, 404:
			c.logger.Error("sheets access rejected", map[string]interface{}{
				"code":    apiErr.Code,
				"message": apiErr.Message,
			})
			return fmt.Errorf("%w: %s", domain.ErrSinkUnavailable, apiErr.Message)
		}
	}

	return err
}
