package host

import (
	"nodelete/internal/providers"
	"sync"
)

const toastHistory = 32

// Toaster logs toasts and keeps the latest ones for the admin API.
type Toaster struct {
	mu     sync.Mutex
	logger providers.Logger
	toasts []string
}

func NewToaster(logger providers.Logger) *Toaster {
	return &Toaster{logger: logger}
}

func (t *Toaster) ShowToast(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.logger.Infof(providers.TypeApp, "Toast: %s", text)
	t.toasts = append(t.toasts, text)
	if len(t.toasts) > toastHistory {
		t.toasts = t.toasts[len(t.toasts)-toastHistory:]
	}
}

func (t *Toaster) Toasts() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.toasts))
	copy(out, t.toasts)
	return out
}
