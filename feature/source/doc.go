// Package source reads YAML inventory files and applies them to an inventory.
//
// A document names the source and lists objects by type:
//
//	name: datacenter-1
//	objects:
//	  - type: site
//	    data: {name: dc1, comments: "main site"}
//	    add_tags: [managed]
//	  - type: device
//	    data:
//	      name: web01
//	      site: {name: dc1}
//	      status: active
//	    unset: [asset_tag]
//
// References are given as nested mappings and are found or created through
// the inventory. The Source value itself is recorded as the origin of every
// entity it touches.
package source
