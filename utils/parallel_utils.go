package utils

import "fmt"

// Communicator is the group of participants taking part in a collective
// operation. Every member of the group must make the same sequence of
// collective calls, otherwise the members that did call block forever.
type Communicator interface {
	Rank() int
	Size() int
	// AllReduceSum returns the elementwise sum of vals over all members.
	// All members must pass slices of the same length.
	AllReduceSum(vals []int) []int
}

// SerialComm is a group with a single participant
type SerialComm struct{}

func (SerialComm) Rank() int { return 0 }
func (SerialComm) Size() int { return 1 }

func (SerialComm) AllReduceSum(vals []int) (sum []int) {
	sum = make([]int, len(vals))
	copy(sum, vals)
	return
}

// Group is a set of in-process participants, usually one goroutine each.
// Members exchange values through a pairwise mailbox: one buffered channel
// per (sender, receiver) pair. A pair carries at most one message per
// collective call and delivers in order, so consecutive calls never mix.
type Group struct {
	NP    int
	links [][]chan []int // links[from][to]
	comms []*GroupComm
}

// NewGroup creates a group of NP participants
func NewGroup(NP int) *Group {
	if NP < 1 {
		panic(fmt.Sprintf("group size %d must be at least 1", NP))
	}
	g := &Group{
		NP:    NP,
		links: make([][]chan []int, NP),
		comms: make([]*GroupComm, NP),
	}
	for from := 0; from < NP; from++ {
		g.links[from] = make([]chan []int, NP)
		for to := 0; to < NP; to++ {
			if to != from {
				g.links[from][to] = make(chan []int, 1)
			}
		}
		g.comms[from] = &GroupComm{group: g, rank: from}
	}
	return g
}

// Comm returns the communicator of participant rank
func (g *Group) Comm(rank int) *GroupComm {
	if rank < 0 || rank > g.NP-1 {
		panic(fmt.Sprintf("rank %d out of bounds for group of %d", rank, g.NP))
	}
	return g.comms[rank]
}

// GroupComm is one participant's view of a Group
type GroupComm struct {
	group *Group
	rank  int
}

func (gc *GroupComm) Rank() int { return gc.rank }
func (gc *GroupComm) Size() int { return gc.group.NP }

func (gc *GroupComm) AllReduceSum(vals []int) (sum []int) {
	var (
		g  = gc.group
		me = gc.rank
	)
	sum = make([]int, len(vals))
	copy(sum, vals)
	for to := 0; to < g.NP; to++ {
		if to == me {
			continue
		}
		msg := make([]int, len(vals))
		copy(msg, vals)
		g.links[me][to] <- msg
	}
	for from := 0; from < g.NP; from++ {
		if from == me {
			continue
		}
		msg := <-g.links[from][me]
		if len(msg) != len(sum) {
			panic(fmt.Sprintf("rank %d sent %d values to rank %d, expected %d",
				from, len(msg), me, len(sum)))
		}
		for i, v := range msg {
			sum[i] += v
		}
	}
	return
}

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucket(kDim int) (bucketNum, min, max int) {
	_, bucketNum, min, max = pm.getBucketWithTryCount(kDim)
	return
}

func (pm *PartitionMap) getBucketWithTryCount(kDim int) (tryCount, bucketNum, min, max int) {
	if kDim < 0 || kDim >= pm.MaxIndex {
		return 0, -1, 0, 0
	}
	// Initial guess
	bucketNum = int(float64(pm.ParallelDegree*kDim) / float64(pm.MaxIndex))
	for !(pm.Partitions[bucketNum][0] <= kDim && pm.Partitions[bucketNum][1] > kDim) {
		if pm.Partitions[bucketNum][0] > kDim {
			bucketNum--
		} else {
			bucketNum++
		}
		if bucketNum == -1 || bucketNum == pm.ParallelDegree {
			return 0, -1, 0, 0
		}
		tryCount++
	}
	min, max = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bn int) (kMax int) {
	if bn == -1 {
		kMax = pm.MaxIndex
		return
	}
	var (
		k1, k2 = pm.GetBucketRange(bn)
	)
	kMax = k2 - k1
	return
}

// Split1D splits one dimension into ParallelDegree pieces with a maximum
// imbalance of one item
func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}
