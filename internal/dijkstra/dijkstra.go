// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package dijkstra finds shortest paths in the "interval graphs" which arise
// when a sequence is split into consecutive blocks.
package dijkstra

// ShortestPath finds the shortest path in the graph with vertices
// 0, 1, ..., n and edges (k, l) for all 0 <= k < l <= n.  The path starts at
// 0 and ends at n.  The function cost(k, l) gives the weight of the edge from
// k to l; negative values indicate that the edge is not present.
//
// The return values are the total cost and the list of vertices along the
// shortest path, starting with 0 and ending with n.  If n cannot be reached,
// the cost is -1 and the path is nil.
func ShortestPath(cost func(k, l int) int, n int) (int, []int) {
	const inf = int(^uint(0) >> 1)

	// Since all edges point forward, the vertices can be settled in
	// decreasing order.
	dist := make([]int, n+1)
	to := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		dist[i] = inf
		for l := i + 1; l <= n; l++ {
			if dist[l] == inf {
				continue
			}
			c := cost(i, l)
			if c < 0 {
				continue
			}
			if alt := c + dist[l]; alt < dist[i] {
				dist[i] = alt
				to[i] = l
			}
		}
	}

	if dist[0] == inf {
		return -1, nil
	}
	res := []int{0}
	pos := 0
	for pos < n {
		pos = to[pos]
		res = append(res, pos)
	}
	return dist[0], res
}
