package services

import (
	"context"
	"digiroots/internal/apperr"
	"digiroots/internal/models"
	"digiroots/internal/notify"
	"digiroots/internal/repository/memstore"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLeadRepo struct{}

func (failingLeadRepo) Create(context.Context, *models.Lead) error { return errors.New("db down") }
func (failingLeadRepo) List(context.Context, int, int) ([]*models.Lead, int, error) {
	return nil, 0, errors.New("db down")
}

func TestLeadSubmit_StoresAndSendsBothEmails(t *testing.T) {
	store := memstore.NewLeadStore()
	mail := &notify.Recorder{}
	svc := NewLeadService(store, mail, "admin@digiroots.in")

	lead, err := svc.Submit(context.Background(), LeadInput{
		Name:        " Ravi ",
		Email:       "ravi@example.com",
		CompanyName: "Acme",
		Message:     "<b>hi</b>",
	})
	require.NoError(t, err)
	assert.NotZero(t, lead.ID)
	assert.Equal(t, "Ravi", lead.Name)

	sent := mail.Sent()
	require.Len(t, sent, 2)
	recipients := []string{sent[0].To, sent[1].To}
	assert.ElementsMatch(t, []string{"admin@digiroots.in", "ravi@example.com"}, recipients)
	for _, m := range sent {
		assert.NotContains(t, m.HTML, "<b>hi</b>")
	}

	leads, total, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Acme", leads[0].CompanyName)
}

func TestLeadSubmit_Validation(t *testing.T) {
	svc := NewLeadService(memstore.NewLeadStore(), &notify.Recorder{}, "admin@digiroots.in")

	_, err := svc.Submit(context.Background(), LeadInput{Name: "X"})
	requireKind(t, err, apperr.KindValidation, "Name and email are required")

	_, err = svc.Submit(context.Background(), LeadInput{Name: "X", Email: "nope"})
	requireKind(t, err, apperr.KindValidation, "Please provide a valid email address")
}

func TestLeadSubmit_MissingAdminAddress(t *testing.T) {
	store := memstore.NewLeadStore()
	svc := NewLeadService(store, &notify.Recorder{}, " ")

	_, err := svc.Submit(context.Background(), LeadInput{Name: "X", Email: "x@y.com"})
	requireKind(t, err, apperr.KindDependency, "Server configuration error")

	_, total, _ := store.List(context.Background(), 10, 0)
	assert.Zero(t, total)
}

func TestLeadSubmit_SendFailure(t *testing.T) {
	mail := &notify.Recorder{Fail: func(m notify.Message) error {
		if m.To == "admin@digiroots.in" {
			return errors.New("smtp down")
		}
		return nil
	}}
	svc := NewLeadService(memstore.NewLeadStore(), mail, "admin@digiroots.in")

	_, err := svc.Submit(context.Background(), LeadInput{Name: "X", Email: "x@y.com"})
	requireKind(t, err, apperr.KindDependency, msgLeadFailed)

	// the acknowledgment still went out
	require.Len(t, mail.Sent(), 1)
	assert.Equal(t, "x@y.com", mail.Sent()[0].To)
}

func TestLeadSubmit_StoreFailure(t *testing.T) {
	mail := &notify.Recorder{}
	svc := NewLeadService(failingLeadRepo{}, mail, "admin@digiroots.in")

	_, err := svc.Submit(context.Background(), LeadInput{Name: "X", Email: "x@y.com"})
	requireKind(t, err, apperr.KindDependency, msgLeadFailed)
	assert.Empty(t, mail.Sent())
}

func TestLeadList_ClampsPaging(t *testing.T) {
	store := memstore.NewLeadStore()
	for i := 0; i < MaxLeadPage+5; i++ {
		require.NoError(t, store.Create(context.Background(), &models.Lead{Name: fmt.Sprint(i), Email: "x@y.com"}))
	}
	svc := NewLeadService(store, &notify.Recorder{}, "admin@digiroots.in")

	leads, total, err := svc.List(context.Background(), 1000, -3)
	require.NoError(t, err)
	assert.Equal(t, MaxLeadPage+5, total)
	assert.Len(t, leads, MaxLeadPage)

	_, _, err = NewLeadService(failingLeadRepo{}, nil, "").List(context.Background(), 10, 0)
	requireKind(t, err, apperr.KindDependency, msgServerError)
}
