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
			serviceName: "import",
			objectType:  "session",
			identifier:  "01HZY",
			paramsKey:   nil,
			expectedKey: "qbank:import:session:01HZY",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "import",
			objectType:  "session",
			identifier:  "01HZY",
			paramsKey:   []string{},
			expectedKey: "qbank:import:session:01HZY",
		},
		{
			name:        "with one paramsKey",
			serviceName: "export",
			objectType:  "csv",
			identifier:  "all",
			paramsKey:   []string{"Math"},
			expectedKey: "qbank:export:csv:all:Math",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "import",
			objectType:  "preview",
			identifier:  "xyz",
			paramsKey:   []string{"param1", "param2", "param3"},
			expectedKey: "qbank:import:preview:xyz:param1_param2_param3",
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
