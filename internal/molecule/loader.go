package molecule

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"

	"github.com/philipparndt/protedit/pkg/pdb"
)

// DefaultSource is the helix bundle shown when no structure is given
const DefaultSource = "https://bioshell.pl/~dgront/alpha_bundle_with_pyrosetta/manual_make_bundle.pdb"

// IsURL reports whether source names an http(s) resource
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads a structure from a local path or an http(s) URL
func Load(ctx context.Context, source string) (*pdb.Structure, error) {
	if !IsURL(source) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return pdb.ParseFile(source)
	}

	resp, err := client.New().Get(source, client.Config{
		Ctx:     ctx,
		Timeout: 30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", source, err)
	}
	defer resp.Close()

	if status := resp.StatusCode(); status < 200 || status > 299 {
		return nil, fmt.Errorf("failed to download %s: status %d", source, status)
	}
	s, err := pdb.Parse(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}
	return s, nil
}

// Result is the outcome of an asynchronous load
type Result struct {
	Source    string
	Structure *pdb.Structure
	Err       error
}

// LoadAsync loads source on a separate goroutine and delivers the result on
// the returned channel. The caller applies it on its UI thread.
func LoadAsync(ctx context.Context, source string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		s, err := Load(ctx, source)
		ch <- Result{Source: source, Structure: s, Err: err}
		close(ch)
	}()
	return ch
}
