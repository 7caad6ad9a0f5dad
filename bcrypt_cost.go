//go:build !race

package funkos

func passwordHashCost() int {
	return HashCost
}
