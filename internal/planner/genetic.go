package planner

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/gizemilhn/dronefleet/internal/core"
	"github.com/gizemilhn/dronefleet/internal/oracle"
	"go.uber.org/zap"
)

const (
	defaultPopulationSize   = 30
	defaultEarlyStopRounds  = 5
	defaultGenerations      = 200
	randomInjectionRate     = 0.2
	mutationRate            = 0.3
	fitnessFeasibleWeight   = 10.0
	fitnessInvalidRoutePen  = 100.0
	fitnessEnergyWeight     = 2.0
	fitnessWindowPenalty    = 20.0
	fitnessUnusedPenalty    = 50.0
	fitnessImbalanceWeight  = 5.0
	fitnessUsedVehicleBonus = 10.0
)

// individual is a candidate solution: position i holds the vehicle assigned
// to parcel i. Representation per §4.6: a length-|parcels| sequence with no
// constraint enforced at the representation level.
type individual []core.VehicleID

// Genetic is the population-search planner. Fitness is computed against each
// vehicle's initial state; assignments are not chained within a fitness
// evaluation (a deliberate simplification, see DESIGN.md Open Question 2).
type Genetic struct {
	Oracle          *oracle.Oracle
	PopulationSize  int
	Generations     int
	EarlyStopRounds int
	Budget          time.Duration
	Rand            *rand.Rand
	Log             *zap.SugaredLogger
}

// NewGenetic constructs a Genetic planner with the spec's default
// parameters (population 30, early-stop after 5 stagnant generations, 30s
// wall-clock budget).
func NewGenetic(o *oracle.Oracle) *Genetic {
	return &Genetic{
		Oracle:          o,
		PopulationSize:  defaultPopulationSize,
		Generations:     defaultGenerations,
		EarlyStopRounds: defaultEarlyStopRounds,
		Budget:          defaultBudget,
		Rand:            rand.New(rand.NewSource(1)),
		Log:             nopLogger(),
	}
}

func (g *Genetic) Name() string { return "genetic" }

func (g *Genetic) Solve(ctx context.Context, fleet []*core.Vehicle, parcels []*core.Parcel, zones []*core.ExclusionZone, now time.Time) core.Assignment {
	assignment, _ := g.SolveWithStatus(ctx, fleet, parcels, zones, now)
	return assignment
}

// SolveWithStatus runs the same generational search as Solve but additionally
// reports whether any individual was ever scored. A caller (session.Optimize)
// uses this to fall back to a simpler planner when the wall-clock budget
// expired before fitness evaluation began at all, per §4.6's "if fitness
// failed to evaluate any individual" clause.
func (g *Genetic) SolveWithStatus(ctx context.Context, fleet []*core.Vehicle, parcels []*core.Parcel, zones []*core.ExclusionZone, now time.Time) (core.Assignment, bool) {
	if len(fleet) == 0 || len(parcels) == 0 {
		return core.NewAssignment(vehicleIDs(fleet)), true
	}

	budget := g.Budget
	if budget <= 0 {
		budget = defaultBudget
	}
	deadline := timeNow().Add(budget)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	ids := vehicleIDs(fleet)
	population := g.initializePopulation(ids, len(parcels))

	var best individual
	bestFitness := math.Inf(-1)
	noImprove := 0
	everScored := false

	for gen := 0; gen < g.Generations; gen++ {
		if wallClockExpired(deadline) {
			g.Log.Infow("genetic planner hit wall-clock budget", "generation", gen)
			break
		}

		scores := make([]float64, len(population))
		anyScored := false
		for i, ind := range population {
			if wallClockExpired(deadline) {
				break
			}
			scores[i] = g.fitness(ind, fleet, parcels, zones, now)
			anyScored = true
		}
		if !anyScored {
			break
		}
		everScored = true

		genBestFitness, genBestIdx := scores[0], 0
		for i, s := range scores {
			if s > genBestFitness {
				genBestFitness, genBestIdx = s, i
			}
		}
		if genBestFitness > bestFitness {
			bestFitness = genBestFitness
			best = population[genBestIdx]
			noImprove = 0
		} else {
			noImprove++
		}
		if noImprove >= g.EarlyStopRounds {
			g.Log.Infow("genetic planner early stop", "generation", gen)
			break
		}

		parents := g.selectParents(population, scores)
		next := make([]individual, 0, g.PopulationSize)
		for len(next) < g.PopulationSize {
			if wallClockExpired(deadline) {
				break
			}
			if g.Rand.Float64() < randomInjectionRate {
				next = append(next, g.randomIndividual(ids, len(parcels)))
				continue
			}
			p1, p2 := g.pickTwoDistinct(parents)
			child := g.crossover(p1, p2)
			g.mutate(child, ids)
			next = append(next, child)
		}
		if len(next) == 0 {
			break
		}
		population = next
	}

	if best == nil {
		// Fitness failed to evaluate any individual, or the loop exited
		// before producing a tracked best: fall back to the first
		// individual, per §4.6.
		best = population[0]
	}

	return g.decode(best, fleet, parcels, zones, now), everScored
}

func (g *Genetic) initializePopulation(ids []core.VehicleID, nParcels int) []individual {
	pop := make([]individual, g.PopulationSize)
	for i := range pop {
		pop[i] = g.randomIndividual(ids, nParcels)
	}
	return pop
}

func (g *Genetic) randomIndividual(ids []core.VehicleID, nParcels int) individual {
	ind := make(individual, nParcels)
	for i := range ind {
		ind[i] = ids[g.Rand.Intn(len(ids))]
	}
	return ind
}

// fitness scores a candidate assignment against each vehicle's initial
// (unchained) state, per the exact term weights in §4.6.
func (g *Genetic) fitness(ind individual, fleet []*core.Vehicle, parcels []*core.Parcel, zones []*core.ExclusionZone, now time.Time) float64 {
	total := 0.0
	usedVehicles := make(map[core.VehicleID]bool)
	loadCounts := make(map[core.VehicleID]int)
	vehicleByID := make(map[core.VehicleID]*core.Vehicle, len(fleet))
	for _, v := range fleet {
		vehicleByID[v.ID] = v
	}

	for i, vid := range ind {
		v := vehicleByID[vid]
		p := parcels[i]
		loadCounts[vid]++

		snapshot := core.SnapshotFrom(v, now)
		verdict := g.Oracle.Evaluate(snapshot, p, v, zones)

		// The heavy penalty is scoped to "no path or path is zone-blocked"
		// per §4.6; WeightExceeded/BatteryInsufficient/OutsideTimeWindow
		// fall through to the distance/window terms below instead.
		if verdict.Rejection == oracle.NoPath || verdict.Rejection == oracle.PathBlocked {
			total -= fitnessInvalidRoutePen
			continue
		}
		if verdict.Ok() {
			usedVehicles[vid] = true
			total += float64(p.Priority) * fitnessFeasibleWeight
		}
		total -= (verdict.Feasibility.Distance / v.Speed) * fitnessEnergyWeight
		if !p.WithinWindow(now) {
			total -= fitnessWindowPenalty
		}
	}

	unused := len(fleet) - len(usedVehicles)
	total -= float64(unused) * fitnessUnusedPenalty

	mu := float64(len(parcels)) / float64(len(fleet))
	for _, count := range loadCounts {
		if count > 0 {
			diff := float64(count) - mu
			total -= diff * diff * fitnessImbalanceWeight
		}
	}

	total += float64(len(usedVehicles)) * fitnessUsedVehicleBonus
	return total
}

func (g *Genetic) selectParents(population []individual, scores []float64) []individual {
	parents := make([]individual, len(population))
	for i := range parents {
		bestIdx := g.Rand.Intn(len(population))
		for k := 0; k < 2; k++ {
			cand := g.Rand.Intn(len(population))
			if scores[cand] > scores[bestIdx] {
				bestIdx = cand
			}
		}
		parents[i] = population[bestIdx]
	}
	return parents
}

func (g *Genetic) pickTwoDistinct(parents []individual) (individual, individual) {
	i := g.Rand.Intn(len(parents))
	j := g.Rand.Intn(len(parents))
	for j == i && len(parents) > 1 {
		j = g.Rand.Intn(len(parents))
	}
	return parents[i], parents[j]
}

func (g *Genetic) crossover(p1, p2 individual) individual {
	if len(p1) <= 1 {
		child := make(individual, len(p1))
		copy(child, p1)
		return child
	}
	point := g.Rand.Intn(len(p1))
	child := make(individual, len(p1))
	copy(child, p1[:point])
	copy(child[point:], p2[point:])
	return child
}

func (g *Genetic) mutate(ind individual, ids []core.VehicleID) {
	for i := range ind {
		if g.Rand.Float64() < mutationRate {
			ind[i] = ids[g.Rand.Intn(len(ids))]
		}
	}
}

// decode applies the final oracle verdict for each (vehicle, parcel) pair in
// the winning individual and stamps parcel outcomes, per §4.6's
// post-processing step.
func (g *Genetic) decode(ind individual, fleet []*core.Vehicle, parcels []*core.Parcel, zones []*core.ExclusionZone, now time.Time) core.Assignment {
	vehicleByID := make(map[core.VehicleID]*core.Vehicle, len(fleet))
	for _, v := range fleet {
		vehicleByID[v.ID] = v
	}
	assignment := core.NewAssignment(vehicleIDs(fleet))
	for i, vid := range ind {
		v := vehicleByID[vid]
		p := parcels[i]
		verdict := g.Oracle.Evaluate(core.SnapshotFrom(v, now), p, v, zones)
		if !verdict.Ok() {
			p.MarkFailed()
			continue
		}
		assignment.Append(vid, p.ID)
		p.AssignTo(vid)
		p.MarkCompleted()
	}
	return assignment
}
