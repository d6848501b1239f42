package leveldb

import (
	"path/filepath"
	"testing"

	"FrontierSim/internal/shared/simconfig"
)

func TestOpen_空路径报错(t *testing.T) {
	if _, err := Open(simconfig.LevelDBConfig{}, nil); err == nil {
		t.Fatalf("期望空路径报错")
	}
}

func TestOpen_创建目录并可读写(t *testing.T) {
	db, err := Open(simconfig.LevelDBConfig{Path: filepath.Join(t.TempDir(), "stats")}, nil)
	if err != nil {
		t.Fatalf("Open err=%v", err)
	}
	defer db.Close()
	if err := db.Put([]byte("k"), []byte("v"), nil); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, err := db.Get([]byte("k"), nil)
	if err != nil || string(v) != "v" {
		t.Fatalf("get = %q, %v", v, err)
	}
}
