package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "user",
			objectType:  "profile",
			identifier:  "123",
			paramsKey:   nil,
			expectedKey: "codezetta:user:profile:123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "user",
			objectType:  "profile",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "codezetta:user:profile:123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "quiz",
			objectType:  "list",
			identifier:  "all",
			paramsKey:   []string{"beginner"},
			expectedKey: "codezetta:quiz:list:all:beginner",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "quiz",
			objectType:  "list",
			identifier:  "s1",
			paramsKey:   []string{"middle", "u1"},
			expectedKey: "codezetta:quiz:list:s1:middle_u1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

func TestNamedKeys(t *testing.T) {
	if got := ShareSlugKey("abc_DEF"); got != "codezetta:share:slug:abc_DEF" {
		t.Errorf("ShareSlugKey() = %v", got)
	}
	if LeaderboardKey != "codezetta:user:leaderboard:points" {
		t.Errorf("LeaderboardKey = %v", LeaderboardKey)
	}
}
