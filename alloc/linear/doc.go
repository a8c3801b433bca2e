// Package linear places raw byte regions in a WebAssembly linear memory.
//
// An Arena instantiates a minimal module that exports one memory and manages
// it with a first-fit free list. Regions are addressed by 32-bit offsets, so
// they can be handed to guest code unchanged. The memory grows page by page
// up to Config.MaxPages; offset 0 is reserved and never returned.
//
// Regions pair with unique handles through the stateful Deleter:
//
//	arena, err := linear.New(ctx, &linear.Config{MaxPages: 16})
//	if err != nil {
//		return err
//	}
//	defer arena.Close(ctx)
//
//	r, err := arena.NewRegion(256, 8)
//	if err != nil {
//		return err
//	}
//	buf := arena.Own(r)
//	defer buf.Reset() // frees the region
//
// A Batch owns several regions through unique handles and frees them
// together, last acquired first.
package linear
