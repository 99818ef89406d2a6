package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUserProfileJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile UserProfile
		want    string
	}{
		{
			name:    "all fields",
			profile: UserProfile{Name: "Jane", Email: "jane@x.com", Avatar: "https://x.com/a.png", Provider: ProviderPassword},
			want:    `{"name":"Jane","email":"jane@x.com","avatar":"https://x.com/a.png","provider":"password"}`,
		},
		{
			name:    "optional fields omitted",
			profile: UserProfile{Name: "Jane"},
			want:    `{"name":"Jane"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.profile)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal = %s, want %s", data, tt.want)
			}

			var back UserProfile
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatal(err)
			}
			if back != tt.profile {
				t.Errorf("round trip = %+v, want %+v", back, tt.profile)
			}
		})
	}
}

func TestProfileViewJSON(t *testing.T) {
	t.Parallel()

	view := ProfileView{Profile: UserProfile{Name: "jane@x.com"}, DisplayName: "jane"}
	data, err := json.Marshal(view)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"profile":{"name":"jane@x.com"},"display_name":"jane"}`
	if string(data) != want {
		t.Errorf("zero ModifiedAt should be omitted: got %s", data)
	}

	view.ModifiedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	data, err = json.Marshal(view)
	if err != nil {
		t.Fatal(err)
	}
	want = `{"profile":{"name":"jane@x.com"},"display_name":"jane","modified_at":"2024-01-02T03:04:05Z"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
