package access

import "testing"

func TestParseIDsDiscardsInvalidTokens(t *testing.T) {
	got := ParseIDs("123, 0, abc,456")
	if len(got) != 2 {
		t.Fatalf("conjunto com %d elementos, esperava 2: %v", len(got), got)
	}
	for _, id := range []int64{123, 456} {
		if _, ok := got[id]; !ok {
			t.Fatalf("faltou %d no conjunto", id)
		}
	}
}

func TestParseIDsCollapsesDuplicates(t *testing.T) {
	got := ParseIDs("7,7, 7 ,8")
	if len(got) != 2 {
		t.Fatalf("conjunto com %d elementos, esperava 2: %v", len(got), got)
	}
}

func TestGateAuthorizes(t *testing.T) {
	g := NewGate("10,20")
	if !g.IsAuthorized(10) || !g.IsAuthorized(20) {
		t.Fatalf("gate negou identidade da lista")
	}
	if g.IsAuthorized(30) {
		t.Fatalf("gate aceitou identidade fora da lista")
	}
}

func TestEmptyGateDeniesEveryone(t *testing.T) {
	for _, raw := range []string{"", "  ", "abc", "0"} {
		g := NewGate(raw)
		for _, id := range []int64{0, 1, -1, 123} {
			if g.IsAuthorized(id) {
				t.Fatalf("gate vazio (%q) autorizou %d", raw, id)
			}
		}
	}
}

func TestNilGateDenies(t *testing.T) {
	var g *Gate
	if g.IsAuthorized(1) {
		t.Fatalf("gate nil autorizou")
	}
	if g.Size() != 0 {
		t.Fatalf("gate nil com tamanho %d", g.Size())
	}
}
