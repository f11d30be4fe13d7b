// Package materialize places a reference to a source file inside a
// destination folder of the workspace.
//
// Names never collide: if "data.json" is taken the next free name among
// "data_1.json", "data_2.json", ... is used. The reference is a symlink
// when possible, a hard link when symlinks are refused, and a
// "<name>.pointer.txt" file holding the absolute source path when neither
// link type works. Folder creation and naming are serialized per folder,
// so a Materializer may be shared by concurrent workers.
package materialize
