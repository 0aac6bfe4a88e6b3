package domain

import "testing"

func TestAverageVotes_Empty(t *testing.T) {
	t.Parallel()

	got := AverageVotes(nil)
	if got != (VoteAverages{}) {
		t.Errorf("expected all zeros for empty input, got %+v", got)
	}

	got = AverageVotes([]Vote{})
	if got != (VoteAverages{}) {
		t.Errorf("expected all zeros for empty slice, got %+v", got)
	}
}

func TestAverageVotes_Single(t *testing.T) {
	t.Parallel()

	got := AverageVotes([]Vote{
		{Parecido: 8, GustoAlAplicar: 6, GustoDespues: 4},
	})

	want := VoteAverages{Parecido: 8, GustoAlAplicar: 6, GustoDespues: 4, Count: 1}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestAverageVotes_Multiple(t *testing.T) {
	t.Parallel()

	got := AverageVotes([]Vote{
		{Parecido: 5, GustoAlAplicar: 5, GustoDespues: 5},
		{Parecido: 7, GustoAlAplicar: 9, GustoDespues: 1},
	})

	want := VoteAverages{Parecido: 6, GustoAlAplicar: 7, GustoDespues: 3, Count: 2}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestAverageVotes_NonIntegerMean(t *testing.T) {
	t.Parallel()

	got := AverageVotes([]Vote{
		{Parecido: 10},
		{Parecido: 5},
		{Parecido: 5},
	})

	const want = 20.0 / 3.0
	if diff := got.Parecido - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("parecido mean: got %v, want %v", got.Parecido, want)
	}
	if got.Count != 3 {
		t.Errorf("count: got %d, want 3", got.Count)
	}
}
