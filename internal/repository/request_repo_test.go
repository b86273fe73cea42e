package repository_test

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"heating_quoting/internal/models"
	"heating_quoting/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

var requestCols = []string{
	"id", "customer_id", "power_kw", "t_supply_c", "t_return_c", "fuel_type", "notes", "status", "created_at",
}

func TestRequestSQLite_Create_FillsDefaults(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewRequestSQLite(db)

	isUUID := sqlmockArgumentFunc(func(v driver.Value) bool {
		s, ok := v.(string)
		return ok && len(s) == 36
	})
	isUTCRecent := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok || tm.Location() != time.UTC {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO heating_requests")).
		WithArgs(isUUID, nil, 500.0, 95.0, 70.0, "gas", nil, "created", isUTCRecent).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), models.HeatingRequest{
		PowerKw:     decimal.NewFromInt(500),
		SupplyTempC: decimal.NewFromInt(95),
		ReturnTempC: decimal.NewFromInt(70),
		FuelType:    models.FuelGas,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	checkMet(t, mock)
}

func TestRequestSQLite_Create_NormalizesGivenTimeToUTC(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewRequestSQLite(db)

	loc := time.FixedZone("MSK", 3*60*60)
	original := time.Date(2025, 6, 1, 15, 0, 0, 0, loc)
	expectedUTC := original.UTC()

	isExactUTC := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		return ok && tm.Equal(expectedUTC) && tm.Location() == time.UTC
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO heating_requests")).
		WithArgs("r1", "cust-9", 500.0, 95.0, 70.0, "gas", "refit", "proposed", isExactUTC).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), models.HeatingRequest{
		ID:          "r1",
		CustomerID:  "cust-9",
		PowerKw:     decimal.NewFromInt(500),
		SupplyTempC: decimal.NewFromInt(95),
		ReturnTempC: decimal.NewFromInt(70),
		FuelType:    models.FuelGas,
		Notes:       "refit",
		Status:      models.RequestStatusProposed,
		CreatedAt:   original,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	checkMet(t, mock)
}

func TestRequestSQLite_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewRequestSQLite(db)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM heating_requests WHERE id = ?")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(requestCols).
			AddRow("r1", nil, 500.0, 95.0, 70.0, "gas", nil, "created", created))

	got, err := repo.GetByID(context.Background(), "r1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatalf("expected a request")
	}
	if got.ID != "r1" || got.CustomerID != "" || got.Notes != "" {
		t.Fatalf("row not scanned: %+v", got)
	}
	if !got.PowerKw.Equal(decimal.NewFromInt(500)) || got.Status != models.RequestStatusCreated {
		t.Fatalf("fields = %s/%s", got.PowerKw, got.Status)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at = %s", got.CreatedAt)
	}

	checkMet(t, mock)
}

func TestRequestSQLite_GetByID_AbsentIsNilNil(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewRequestSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM heating_requests WHERE id = ?")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(requestCols))

	got, err := repo.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil request, got %+v", got)
	}

	checkMet(t, mock)
}

func TestRequestSQLite_List_BuildsFilteredQuery(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewRequestSQLite(db)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = ? AND fuel_type = ? ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?")).
		WithArgs("proposed", "gas", 50, 0).
		WillReturnRows(sqlmock.NewRows(requestCols).
			AddRow("r2", "cust-1", 750.0, 110.0, 80.0, "gas", "expansion", "proposed", created))

	got, err := repo.List(context.Background(), models.RequestFilter{
		Status:   models.RequestStatusProposed,
		FuelType: models.FuelGas,
		Limit:    50,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].CustomerID != "cust-1" || got[0].Notes != "expansion" {
		t.Fatalf("List() = %+v", got)
	}

	checkMet(t, mock)
}

func TestRequestSQLite_SetStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewRequestSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE heating_requests SET status = ? WHERE id = ?")).
		WithArgs("selected", "r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE heating_requests SET status = ? WHERE id = ?")).
		WithArgs("selected", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.SetStatus(context.Background(), "r1", models.RequestStatusSelected)
	if err != nil || !ok {
		t.Fatalf("SetStatus(r1) = %v, %v; want true, nil", ok, err)
	}
	ok, err = repo.SetStatus(context.Background(), "missing", models.RequestStatusSelected)
	if err != nil || ok {
		t.Fatalf("SetStatus(missing) = %v, %v; want false, nil", ok, err)
	}

	checkMet(t, mock)
}

func TestRequestSQLite_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewRequestSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM heating_requests WHERE id = ?")).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(context.Background(), "r1")
	if err != nil || !ok {
		t.Fatalf("Delete() = %v, %v; want true, nil", ok, err)
	}

	checkMet(t, mock)
}
