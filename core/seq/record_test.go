package seq

import "testing"

func TestStripReturns(t *testing.T) {
	in := []byte("ACGT")
	if out := StripReturns(in); &out[0] != &in[0] {
		t.Fatalf("expected no copy when there is nothing to strip")
	}
	if got := string(StripReturns([]byte("AC\r\nGT\nA"))); got != "ACGTA" {
		t.Fatalf("StripReturns = %q", got)
	}
}

func TestRecordCloneAndName(t *testing.T) {
	buf := []byte("r1 extra\tmore")
	r := Record{ID: buf, Seq: []byte("AC"), Qual: []byte{}}
	c := r.Clone()
	buf[0] = 'X'
	if string(c.ID) != "r1 extra\tmore" {
		t.Fatalf("clone aliases source: %q", c.ID)
	}
	if !c.HasQual() {
		t.Fatalf("empty qualities must survive Clone")
	}
	if got := string(c.Name()); got != "r1" {
		t.Fatalf("Name = %q", got)
	}
	if (Record{Seq: []byte("A")}).Clone().HasQual() {
		t.Fatalf("FASTA record gained qualities")
	}
}
