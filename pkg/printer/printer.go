package printer

import (
	"context"
	"net"
	"time"

	"github.com/printerm/printerm/pkg/config"
	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/logging"
	"github.com/printerm/printerm/pkg/render"
)

// DefaultPort is the raw-socket port ESC/POS network printers listen on.
const DefaultPort = "9100"

// Printer sends encoded documents to a network thermal printer. One
// connection is opened per document and closed when the document has
// been sent, whatever the outcome.
type Printer struct {
	address string
	timeout time.Duration
	ascii   bool
}

// New builds a printer from the configuration. It fails when no printer
// address has been configured.
func New(cfg *config.Config) (*Printer, error) {
	ip, err := cfg.PrinterIP()
	if err != nil {
		return nil, err
	}
	return &Printer{
		address: hostPort(ip),
		timeout: cfg.PrinterTimeout(),
		ascii:   !cfg.Printer.EnableSpecialLetters,
	}, nil
}

// Print encodes the runs and sends the whole document over a single
// connection. A transport failure mid-document is reported as-is and
// never retried: after a partial send the device's toggle state is
// unknown, so the only safe recovery is resending the full document.
func (p *Printer) Print(ctx context.Context, runs []render.Run) error {
	logger := logging.GetLogger("printer")

	payload, err := EncodeDocument(runs, p.ascii)
	if err != nil {
		return err
	}

	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return errors.Wrapf(err, errors.ErrPrintTransport,
			"Cannot reach printer at %s", p.address)
	}
	defer conn.Close()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(p.timeout)
	}
	_ = conn.SetDeadline(deadline)

	written, err := conn.Write(payload)
	if err != nil {
		return errors.Wrapf(err, errors.ErrPrintTransport,
			"Sending document to %s failed", p.address).
			WithDetail("bytes_written", written)
	}

	logger.Debug().
		Str("address", p.address).
		Int("bytes", written).
		Int("runs", len(runs)).
		Msg("Document sent to printer")
	return nil
}

// hostPort appends the default printing port when the configured
// address does not already carry one.
func hostPort(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, DefaultPort)
}
