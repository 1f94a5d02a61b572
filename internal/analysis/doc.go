// Package analysis looks for structure in run histories.
//
// Population and mean radius swing as globs split and merge. The tools here
// summarise a series and find its dominant cycle:
//
//   - [PowerSpectrum]: magnitude spectrum of a mean-removed series
//   - [DominantPeriod]: the strongest cycle length, in ticks
//   - [Describe]: mean, spread and range
//
// # Finding a cycle
//
//	pop, _ := result.Series("population")
//	period, power := analysis.DominantPeriod(pop)
package analysis
