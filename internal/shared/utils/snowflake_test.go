package utils

import (
	"testing"
	"time"
)

func TestNewSnowflake_节点号越界(t *testing.T) {
	if _, err := NewSnowflake(-1); err == nil {
		t.Fatalf("期望 -1 越界")
	}
	if _, err := NewSnowflake(maxNodeID + 1); err == nil {
		t.Fatalf("期望 %d 越界", maxNodeID+1)
	}
}

func TestNextID_单调递增且可拆解(t *testing.T) {
	sf, err := NewSnowflake(7)
	if err != nil {
		t.Fatalf("NewSnowflake err=%v", err)
	}
	before := time.Now().Add(-time.Second)
	var last int64
	for i := 0; i < 5000; i++ {
		id := sf.NextID()
		if id <= last {
			t.Fatalf("第 %d 个 id 未递增: %d <= %d", i, id, last)
		}
		last = id
	}
	at, node, _ := Decompose(last)
	if node != 7 {
		t.Fatalf("node = %d", node)
	}
	if at.Before(before) || at.After(time.Now().Add(time.Second)) {
		t.Fatalf("时间戳异常: %v", at)
	}
}
