package booking

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/domain/user"
)

type recordingStorage struct {
	savedKey string
	deleted  []string
	saveErr  error
	delErr   error
}

func (f *recordingStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedKey = key
	return nil
}

func (f *recordingStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.delErr
}

func (f *recordingStorage) GetURL(key string) string { return "/files/" + key }

func TestDecodeSignature(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	data, err := decodeSignature(payload)
	if err != nil {
		t.Fatalf("raw base64 rejected: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("decoded %q", data)
	}

	data, err = decodeSignature("data:image/png;base64," + payload)
	if err != nil {
		t.Fatalf("data URL rejected: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("decoded %q", data)
	}

	if _, err := decodeSignature("%%%not-base64%%%"); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
	if _, err := decodeSignature(""); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature for empty payload, got %v", err)
	}
}

func TestSignatureKey(t *testing.T) {
	id := uuid.New()
	key := signatureKey(id)

	if !strings.HasPrefix(key, "signatures/"+id.String()+"_") {
		t.Errorf("key %q missing booking prefix", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Errorf("key %q missing png suffix", key)
	}
	if key == signatureKey(id) {
		t.Error("two keys for the same booking must differ")
	}
}

func TestSignConsent_ReplacesPreviousFile(t *testing.T) {
	fx := newFixture()
	store := &recordingStorage{}
	fx.service.storage = store

	b := fx.addBooking(&Booking{
		CustomerName:  "Bob",
		PhoneNumber:   "07123456789",
		SessionDate:   ns("2024-06-01"),
		SessionTime:   ns("10:00"),
		SignaturePath: ns("signatures/old.png"),
	})

	payload := base64.StdEncoding.EncodeToString([]byte("new-signature"))
	resp, err := fx.service.SignConsent(context.Background(), fx.salesPerson, user.RoleSalesPerson, b.ID, &SignatureRequest{Signature: payload})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.ConsentFormSigned {
		t.Error("consent flag must be set after signing")
	}
	if len(store.deleted) != 1 || store.deleted[0] != "signatures/old.png" {
		t.Errorf("previous file not deleted: %v", store.deleted)
	}
	if store.savedKey == "" || !strings.HasPrefix(store.savedKey, "signatures/"+b.ID.String()) {
		t.Errorf("saved under %q", store.savedKey)
	}
}

func TestSignConsent_DeleteFailureIsSwallowed(t *testing.T) {
	fx := newFixture()
	store := &recordingStorage{delErr: errors.New("s3 went away")}
	fx.service.storage = store

	b := fx.addBooking(&Booking{
		CustomerName:  "Bob",
		PhoneNumber:   "07123456789",
		SessionDate:   ns("2024-06-01"),
		SessionTime:   ns("10:00"),
		SignaturePath: ns("signatures/old.png"),
	})

	payload := base64.StdEncoding.EncodeToString([]byte("sig"))
	if _, err := fx.service.SignConsent(context.Background(), fx.salesPerson, user.RoleSalesPerson, b.ID, &SignatureRequest{Signature: payload}); err != nil {
		t.Fatalf("stale-file delete failure must not block re-signing: %v", err)
	}
}

func TestSignConsent_SaveFailureIsFatal(t *testing.T) {
	fx := newFixture()
	store := &recordingStorage{saveErr: errors.New("disk full")}
	fx.service.storage = store

	b := fx.addBooking(&Booking{
		CustomerName: "Bob",
		PhoneNumber:  "07123456789",
		SessionDate:  ns("2024-06-01"),
		SessionTime:  ns("10:00"),
	})

	payload := base64.StdEncoding.EncodeToString([]byte("sig"))
	if _, err := fx.service.SignConsent(context.Background(), fx.salesPerson, user.RoleSalesPerson, b.ID, &SignatureRequest{Signature: payload}); err == nil {
		t.Fatal("expected save failure to surface")
	}
	if fx.repo.bookings[b.ID].ConsentFormSigned {
		t.Error("consent must not be recorded when the file write fails")
	}
}
