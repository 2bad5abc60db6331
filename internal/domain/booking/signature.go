package booking

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/studioline/studioline-api/internal/domain/user"
)

// SignConsent decodes a base64 PNG signature, normalizes it, stores it under
// a fresh key, removes the previous file and marks the consent form signed.
// Failing to delete the stale file never blocks re-signing.
func (s *Service) SignConsent(ctx context.Context, callerID uuid.UUID, callerRole user.Role, id uuid.UUID, req *SignatureRequest) (*Response, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if !user.CanMutateOthersBookings(callerRole) && b.SalesPersonID != callerID {
		return nil, ErrNotOwner
	}

	data, err := decodeSignature(req.Signature)
	if err != nil {
		return nil, err
	}
	if s.normalizer != nil {
		normalized, err := s.normalizer.NormalizePNG(data)
		if err != nil {
			return nil, ErrInvalidSignature
		}
		data = normalized
	}

	key := signatureKey(b.ID)
	if err := s.storage.Save(ctx, key, bytes.NewReader(data), "image/png"); err != nil {
		return nil, fmt.Errorf("save signature: %w", err)
	}

	if b.SignaturePath.Valid {
		if err := s.storage.Delete(ctx, b.SignaturePath.String); err != nil {
			log.Warn().Err(err).
				Str("booking_id", b.ID.String()).
				Str("path", b.SignaturePath.String).
				Msg("Failed to delete previous signature file")
		}
	}

	if err := s.repo.UpdateSignature(ctx, b.ID, key); err != nil {
		return nil, err
	}
	b.SignaturePath = nullString(key)
	b.ConsentFormSigned = true

	return s.enrichOne(ctx, b)
}

// decodeSignature accepts raw base64 or a data URL payload
func decodeSignature(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ";base64,"); idx >= 0 {
		payload = payload[idx+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidSignature
	}
	if len(data) == 0 {
		return nil, ErrInvalidSignature
	}
	return data, nil
}

func signatureKey(bookingID uuid.UUID) string {
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return fmt.Sprintf("signatures/%s_%d_%s.png", bookingID, time.Now().UnixMilli(), hex.EncodeToString(suffix))
}
