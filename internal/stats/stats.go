// Package stats accumulates per-file sequence statistics.
package stats

import "fqscan-core/seq"

// Stats is the running summary of one file.
type Stats struct {
	Records int
	Bases   int64
	MinLen  int
	MaxLen  int

	qualSum int64
	qualN   int64
}

// Visit adds one record. Quality is summed as raw Phred+33 bytes.
func (s *Stats) Visit(r seq.Record) error {
	n := len(r.Seq)
	if s.Records == 0 || n < s.MinLen {
		s.MinLen = n
	}
	if n > s.MaxLen {
		s.MaxLen = n
	}
	s.Records++
	s.Bases += int64(n)
	if r.HasQual() {
		for _, q := range r.Qual {
			s.qualSum += int64(q) - 33
		}
		s.qualN += int64(len(r.Qual))
	}
	return nil
}

func (s *Stats) Result() Stats { return *s }

// MeanLen is Bases/Records, or 0 for an empty file.
func (s Stats) MeanLen() float64 {
	if s.Records == 0 {
		return 0
	}
	return float64(s.Bases) / float64(s.Records)
}

// MeanQual is the mean Phred score over every quality byte seen. ok is false
// when no record carried quality (FASTA, or empty FASTQ).
func (s Stats) MeanQual() (q float64, ok bool) {
	if s.qualN == 0 {
		return 0, false
	}
	return float64(s.qualSum) / float64(s.qualN), true
}
