package service

import (
	"context"
	"errors"

	ipmeta "github.com/ipmeta/ipmeta-go"
	"github.com/ipmeta/ipmeta-go/internal/logger"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidIP is returned for syntactically invalid lookup targets. The
// upstream API is never contacted for these.
var ErrInvalidIP = errors.New("invalid IP address format")

// Lookuper is the slice of the ipmeta.Handler surface the service needs.
// Defined here so tests can substitute a stub.
type Lookuper interface {
	GetDetails(ctx context.Context, key ipmeta.Key) (*ipmeta.Details, error)
}

// LookupService handles business logic for daemon lookups: it validates
// input, delegates to the client library and logs outcomes. Quota and
// upstream errors pass through untouched so the handler layer can map them
// to status codes.
type LookupService struct {
	handler   Lookuper
	validator *validator.Validate
	logger    *logger.Logger
}

// NewLookupService creates a lookup service. log may be nil.
func NewLookupService(handler Lookuper, log *logger.Logger) *LookupService {
	if log == nil {
		log = logger.NewDefault()
	}
	return &LookupService{
		handler:   handler,
		validator: validator.New(),
		logger:    log.WithComponent("LookupService"),
	}
}

// Lookup returns metadata for a specific IP address.
func (s *LookupService) Lookup(ctx context.Context, ip string) (*ipmeta.Details, error) {
	// The "ip" tag accepts both IPv4 and IPv6.
	if err := s.validator.Var(ip, "required,ip"); err != nil {
		s.logger.Warn().Str("ip", ip).Msg("Invalid IP address format")
		return nil, ErrInvalidIP
	}

	s.logger.Debug().Str("ip", ip).Msg("Looking up IP address")
	details, err := s.handler.GetDetails(ctx, ipmeta.Address(ip))
	if err != nil {
		s.logger.Error().Err(err).Str("ip", ip).Msg("Lookup failed")
		return nil, err
	}

	s.logger.Info().
		Str("ip", ip).
		Str("country", details.Country()).
		Str("city", details.City()).
		Msg("IP lookup successful")
	return details, nil
}

// LookupSelf returns metadata for the daemon's own public address.
func (s *LookupService) LookupSelf(ctx context.Context) (*ipmeta.Details, error) {
	s.logger.Debug().Msg("Looking up own address")
	details, err := s.handler.GetDetails(ctx, ipmeta.Self())
	if err != nil {
		s.logger.Error().Err(err).Msg("Self lookup failed")
		return nil, err
	}
	return details, nil
}
