package pagination

import "testing"

func TestPageRequest_Defaults(t *testing.T) {
	tests := []struct {
		name         string
		in           PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero", PageRequest{}, 1, 20},
		{"kept", PageRequest{Page: 3, PageSize: 50}, 3, 50},
		{"clamped", PageRequest{Page: -1, PageSize: 500}, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Defaults()
			if tt.in.Page != tt.wantPage || tt.in.PageSize != tt.wantPageSize {
				t.Errorf("got page=%d size=%d, want %d/%d", tt.in.Page, tt.in.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequest_OrderClause(t *testing.T) {
	sortable := []string{"due_date", "title"}

	tests := []struct {
		sort    string
		want    string
		wantErr bool
	}{
		{"", "created_at DESC", false},
		{"due_date", "due_date ASC, created_at DESC", false},
		{"-title", "title DESC, created_at DESC", false},
		{"owner", "", true},
		{"-", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			req := PageRequest{Sort: tt.sort}
			got, err := req.OrderClause(sortable, "created_at DESC")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.sort, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[string](nil, PageRequest{Page: 2, PageSize: 10}, 21)

	if resp.Data == nil || len(resp.Data) != 0 {
		t.Errorf("expected empty non-nil data, got %v", resp.Data)
	}
	if resp.TotalPages != 3 || resp.Page != 2 || resp.PageSize != 10 {
		t.Errorf("unexpected metadata %+v", resp)
	}
}
