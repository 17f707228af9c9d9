package utils

type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

func (I Index) Apply(f func(val int) int) Index {
	for i, val := range I {
		I[i] = f(val)
	}
	return I
}
