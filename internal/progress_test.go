package internal

import (
	"context"
	"errors"
	"testing"
)

func TestShowProgress(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
		fn      func() error
		wantErr bool
	}{
		{
			name:    "successful function",
			message: "Testing",
			fn: func() error {
				return nil
			},
			wantErr: false,
		},
		{
			name:    "function with error",
			message: "Testing error",
			fn: func() error {
				return errors.New("test error")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShowProgress(ctx, tt.message, tt.fn)
			if (err != nil) != tt.wantErr {
				t.Errorf("ShowProgress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderStep(t *testing.T) {
	tests := []struct {
		p    Progress
		want string
	}{
		{p: Progress{Current: 0, Total: 2}, want: "[0/2]"},
		{p: Progress{Current: 2, Total: 2}, want: "[2/2]"},
	}

	for _, tt := range tests {
		if got := RenderStep(tt.p); got != tt.want {
			t.Errorf("RenderStep(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}
