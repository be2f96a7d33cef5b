// internal/output/types_test.go
package output

import (
	"testing"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{
			name: "valid mongodb",
			opts: Options{Type: TypeMongoDB, MongoDB: MongoOptions{URI: "mongodb://localhost:27017", Database: "linkedin_data"}},
		},
		{
			name:    "mongodb missing URI",
			opts:    Options{Type: TypeMongoDB, MongoDB: MongoOptions{Database: "linkedin_data"}},
			wantErr: true,
		},
		{
			name:    "mongodb missing database",
			opts:    Options{Type: TypeMongoDB, MongoDB: MongoOptions{URI: "mongodb://localhost:27017"}},
			wantErr: true,
		},
		{
			name: "valid sqlite",
			opts: Options{Type: TypeSQLite, SQLite: SQLiteOptions{Path: "data.db"}},
		},
		{
			name:    "sqlite missing path",
			opts:    Options{Type: TypeSQLite},
			wantErr: true,
		},
		{
			name: "valid json",
			opts: Options{Type: TypeJSON, File: FileOptions{Path: "out.json"}},
		},
		{
			name:    "json missing path",
			opts:    Options{Type: TypeJSON},
			wantErr: true,
		},
		{
			name:    "missing type",
			opts:    Options{},
			wantErr: true,
		},
		{
			name:    "unsupported type",
			opts:    Options{Type: "cassandra"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
