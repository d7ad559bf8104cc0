// Package algorithms provides the trace generators for every algorithm
// algoviz can animate.
//
// Each generator is a pure function from a normalized input to a complete
// [trace.Trace]. Generators never fail for input that passed normalization:
//
//   - searching: [LinearSearch], [BinarySearch]
//   - compare-exchange sorts: [BubbleSort], [InsertionSort], [SelectionSort]
//   - divide and conquer: [MergeSort], [QuickSort]
//   - [HeapSort]
//   - distribution sorts: [CountingSort], [RadixSort]
//   - traversal: [BFS], [DFS]
//   - weighted graphs: [Dijkstra], [Kruskal], [FloydWarshall]
//
// Every trace starts with a neutral step, records one step per comparison,
// swap, visit, discovery, placement or edge decision, and ends with a
// terminal step describing the outcome. Inputs with at most one element
// produce exactly the start and terminal steps.
//
// # Ordering
//
// Graph neighbours are taken in the order their edges appear in the input,
// with each undirected edge listed under both endpoints. Where a choice
// between equal candidates remains (Dijkstra's next vertex, Kruskal's equal
// weights) the lower vertex or earlier edge wins.
package algorithms
