package server

import (
	"fmt"
	"runtime"
)

const defaultMaxUploadMB = 16

// Options configures server creation.
type Options struct {
	// StorageDir is the root under which the server creates its temporary
	// workspace. Empty means the system temp directory.
	StorageDir string
	// MaxUploadMB caps the size of one uploaded .puz file.
	MaxUploadMB int
	// Concurrency bounds parallel decodes; zero means NumCPU.
	Concurrency int
}

func (o Options) Validate() error {
	if o.MaxUploadMB < 0 {
		return fmt.Errorf("maxUploadMB must not be negative, got %d", o.MaxUploadMB)
	}
	if o.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", o.Concurrency)
	}
	return nil
}

func (o Options) maxUploadBytes() int64 {
	mb := o.MaxUploadMB
	if mb <= 0 {
		mb = defaultMaxUploadMB
	}
	return int64(mb) << 20
}

func (o Options) concurrency() int {
	if o.Concurrency <= 0 {
		return runtime.NumCPU()
	}
	return o.Concurrency
}
