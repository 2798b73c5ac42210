/*
Package builder turns a format-agnostic structure description (config.Model)
into a live *mrs.Structure. It only uses the structure's public API, so every
rule the registry and the reference classifier enforce applies to described
structures too.

Construction is a multi-phase process:

 1. Package Catalog: every declared package, and every package a metamodel
    names, is materialized in an epackage.Catalog.

 2. Layers and Registration: layers are appended lowest first and each
    metamodel is registered into its layer. The registry canonicalizes the
    package and rejects a second metamodel for the same top-level package.

 3. Reference Linking: once all metamodels exist, each described reference is
    resolved by target name and added with its classification.

Building stops at the first failure. The structure it returns is not
validated; run the validate package on it for the structural audit.
*/
package builder
