package llm

import (
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/satriahrh/bhasha/domain"
)

// isConnectionError reports whether err means the endpoint could not be reached at all,
// as opposed to a reachable endpoint answering badly.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}

// classify wraps err with ErrModelUnreachable when the endpoint was not reachable.
func classify(provider string, err error) error {
	if isConnectionError(err) {
		return fmt.Errorf("%w: %s: %w", domain.ErrModelUnreachable, provider, err)
	}
	return fmt.Errorf("%s: %w", provider, err)
}
