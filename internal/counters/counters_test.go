package counters

import "testing"

func TestHitTableIncrAndAdd(t *testing.T) {
	tbl := newHitTable()
	tbl.Incr("a")
	tbl.Incr("a")
	tbl.Add("b", 5)

	if got := tbl.Get("a"); got != 2 {
		t.Errorf("a = %d, want 2", got)
	}
	if got := tbl.Get("b"); got != 5 {
		t.Errorf("b = %d, want 5", got)
	}
	if got := tbl.Get("missing"); got != 0 {
		t.Errorf("missing key should report 0, got %d", got)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}

func TestByteTableAccumulates(t *testing.T) {
	tbl := newByteTable()
	tbl.Add("file.html", 1024)
	tbl.Add("file.html", 512)
	if got := tbl.Get("file.html"); got != 1536 {
		t.Errorf("got %d, want 1536", got)
	}
}

func TestUniqueSetInsertOnce(t *testing.T) {
	set := newUniqueSet()
	if !set.InsertOnce("k1") {
		t.Fatal("first insert should report new")
	}
	if set.InsertOnce("k1") {
		t.Fatal("second insert of the same key should report not-new")
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
}

func TestNamedHitTableRecordsMetaOnFirstSightOnly(t *testing.T) {
	tbl := newNamedHitTable()
	tbl.Record("Chrome", "Browser")
	tbl.Record("Chrome", "SomethingElseIgnored")

	var got Entry
	tbl.ForEach(func(e Entry) {
		if e.Key == "Chrome" {
			got = e
		}
	})
	if got.Hits != 2 {
		t.Errorf("Hits = %d, want 2", got.Hits)
	}
	if got.Meta != "Browser" {
		t.Errorf("Meta = %q, want %q (first-sight value retained)", got.Meta, "Browser")
	}
}

func TestHostAgentTableTracksDistinctAgentsPerHost(t *testing.T) {
	tbl := newHostAgentTable()
	tbl.Append("127.0.0.1", "Mozilla/5.0")
	tbl.Append("127.0.0.1", "Mozilla/5.0")
	tbl.Append("127.0.0.1", "curl/8.0")
	tbl.Append("10.0.0.1", "curl/8.0")

	if got := tbl.Count("127.0.0.1"); got != 2 {
		t.Errorf("Count(127.0.0.1) = %d, want 2", got)
	}
	if got := tbl.Count("10.0.0.1"); got != 1 {
		t.Errorf("Count(10.0.0.1) = %d, want 1", got)
	}
	if got := tbl.Count("unseen"); got != 0 {
		t.Errorf("Count(unseen) = %d, want 0", got)
	}
}
