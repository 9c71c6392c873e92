package datasets

// Blank imports pull in every bundled loader's Register call.
import (
	_ "mircorpus/datasets/beatles"
	_ "mircorpus/datasets/giantstepskey"
	_ "mircorpus/datasets/ikala"
	_ "mircorpus/datasets/orchset"
)
