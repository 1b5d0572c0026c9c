package schema

// AssignedObjectRelation selects the interface type an IP address is assigned to.
// Extending it automatically extends the accepted assigned_object_type values.
var AssignedObjectRelation = NewRelation(map[string]ObjectType{
	"dcim.interface":             Interface,
	"virtualization.vminterface": VMInterface,
})

var (
	deviceStatus = []string{"offline", "active", "planned", "staged", "failed", "inventory", "decommissioning"}
	vmStatus     = []string{"offline", "active", "planned", "staged", "failed", "decommissioning"}
	portMode     = []string{"access", "tagged", "tagged-all"}
	portType     = []string{"virtual", "100base-tx", "1000base-t", "10gbase-t", "25gbase-x-sfp28", "40gbase-x-qsfpp", "other"}
)

func declarations() []*Schema {
	return []*Schema{
		newSchema(Schema{
			Type: Tag, Name: "tag", APIPath: "extras/tags", PrimaryKey: "name",
			Attributes: []Attribute{
				{"name", BoundedString(100)},
				{"slug", BoundedString(100)},
				{"color", BoundedString(6)},
				{"description", BoundedString(200)},
			},
		}),
		newSchema(Schema{
			Type: Tenant, Name: "tenant", APIPath: "tenancy/tenants", PrimaryKey: "name",
			Attributes: []Attribute{
				{"name", BoundedString(30)},
				{"slug", BoundedString(50)},
				{"comments", FreeString()},
				{"description", BoundedString(200)},
				{"tags", TagList()},
			},
		}),
		newSchema(Schema{
			Type: Site, Name: "site", APIPath: "dcim/sites", PrimaryKey: "name",
			Attributes: []Attribute{
				{"name", BoundedString(50)},
				{"slug", BoundedString(50)},
				{"comments", FreeString()},
				{"tenant", Reference(Tenant)},
				{"tags", TagList()},
			},
		}),
		newSchema(Schema{
			Type: VRF, Name: "VRF", APIPath: "ipam/vrfs", PrimaryKey: "name",
			Attributes: []Attribute{
				{"name", BoundedString(50)},
				{"description", BoundedString(200)},
				{"tenant", Reference(Tenant)},
				{"tags", TagList()},
			},
		}),
		newSchema(Schema{
			Type: VLAN, Name: "VLAN", APIPath: "ipam/vlans", PrimaryKey: "vid",
			SecondaryKey: "name", EnforceSecondaryKey: true, SiteScoped: true,
			Attributes: []Attribute{
				{"vid", Integer()},
				{"name", BoundedString(64)},
				{"site", Reference(Site)},
				{"description", BoundedString(200)},
				{"tenant", Reference(Tenant)},
				{"tags", TagList()},
			},
		}),
		newSchema(Schema{
			Type: Prefix, Name: "IP prefix", APIPath: "ipam/prefixes", PrimaryKey: "prefix",
			CreateUnsupported: true,
			Attributes: []Attribute{
				{"prefix", Network()},
				{"site", Reference(Site)},
				{"tenant", Reference(Tenant)},
				{"vlan", Reference(VLAN)},
				{"vrf", Reference(VRF)},
				{"description", BoundedString(200)},
				{"tags", TagList()},
			},
		}),
		newSchema(Schema{
			Type: Manufacturer, Name: "manufacturer", APIPath: "dcim/manufacturers", PrimaryKey: "name",
			Attributes: []Attribute{
				{"name", BoundedString(50)},
				{"slug", BoundedString(50)},
				{"description", BoundedString(200)},
			},
		}),
		newSchema(Schema{
			Type: DeviceType, Name: "device type", APIPath: "dcim/device-types", PrimaryKey: "model",
			Attributes: []Attribute{
				{"model", BoundedString(50)},
				{"slug", BoundedString(50)},
				{"part_number", BoundedString(50)},
				{"description", BoundedString(200)},
				{"manufacturer", Reference(Manufacturer)},
				{"tags", TagList()},
			},
		}),
		newSchema(Schema{
			Type: Platform, Name: "platform", APIPath: "dcim/platforms", PrimaryKey: "name",
			Attributes: []Attribute{
				{"name", BoundedString(100)},
				{"slug", BoundedString(100)},
				{"manufacturer", Reference(Manufacturer)},
				{"description", BoundedString(200)},
			},
		}),
		newSchema(Schema{
			Type: ClusterType, Name: "cluster type", APIPath: "virtualization/cluster-types", PrimaryKey: "name",
			Attributes: []Attribute{
				{"name", BoundedString(50)},
				{"slug", BoundedString(50)},
				{"description", BoundedString(200)},
			},
		}),
		newSchema(Schema{
			Type: ClusterGroup, Name: "cluster group", APIPath: "virtualization/cluster-groups", PrimaryKey: "name",
			Attributes: []Attribute{
				{"name", BoundedString(50)},
				{"slug", BoundedString(50)},
				{"description", BoundedString(200)},
			},
		}),
		newSchema(Schema{
			Type: DeviceRole, Name: "device role", APIPath: "dcim/device-roles", PrimaryKey: "name",
			Attributes: []Attribute{
				{"name", BoundedString(50)},
				{"slug", BoundedString(50)},
				{"color", BoundedString(6)},
				{"description", BoundedString(200)},
				{"vm_role", Bool()},
			},
		}),
		newSchema(Schema{
			Type: Cluster, Name: "cluster", APIPath: "virtualization/clusters", PrimaryKey: "name",
			Attributes: []Attribute{
				{"name", BoundedString(100)},
				{"comments", FreeString()},
				{"type", Reference(ClusterType)},
				{"group", Reference(ClusterGroup)},
				{"site", Reference(Site)},
				{"tags", TagList()},
			},
		}),
		newSchema(Schema{
			Type: Device, Name: "device", APIPath: "dcim/devices", PrimaryKey: "name",
			SecondaryKey: "site", Prune: true,
			Attributes: []Attribute{
				{"name", BoundedString(64)},
				{"device_type", Reference(DeviceType)},
				{"device_role", Reference(DeviceRole)},
				{"platform", Reference(Platform)},
				{"serial", BoundedString(50)},
				{"site", Reference(Site)},
				{"status", Choice(deviceStatus...)},
				{"cluster", Reference(Cluster)},
				{"asset_tag", BoundedString(50)},
				{"primary_ip4", AddressReference(IPAddress)},
				{"primary_ip6", AddressReference(IPAddress)},
				{"tags", TagList()},
				{"tenant", Reference(Tenant)},
			},
		}),
		newSchema(Schema{
			Type: VirtualMachine, Name: "virtual machine", APIPath: "virtualization/virtual-machines", PrimaryKey: "name",
			SecondaryKey: "cluster", Prune: true,
			Attributes: []Attribute{
				{"name", BoundedString(64)},
				{"status", Choice(vmStatus...)},
				{"cluster", Reference(Cluster)},
				{"role", Reference(DeviceRole)},
				{"platform", Reference(Platform)},
				{"vcpus", Float()},
				{"memory", Integer()},
				{"disk", Integer()},
				{"comments", FreeString()},
				{"primary_ip4", AddressReference(IPAddress)},
				{"primary_ip6", AddressReference(IPAddress)},
				{"tags", TagList()},
				{"tenant", Reference(Tenant)},
			},
		}),
		newSchema(Schema{
			Type: VMInterface, Name: "virtual machine interface", APIPath: "virtualization/interfaces", PrimaryKey: "name",
			SecondaryKey: "virtual_machine", EnforceSecondaryKey: true, Prune: true,
			Attributes: []Attribute{
				{"name", BoundedString(64)},
				{"virtual_machine", Reference(VirtualMachine)},
				{"enabled", Bool()},
				{"mac_address", FreeString()},
				{"mtu", Integer()},
				{"mode", Choice(portMode...)},
				{"untagged_vlan", Reference(VLAN)},
				{"tagged_vlans", VLANList()},
				{"description", BoundedString(200)},
				{"tags", TagList()},
			},
		}),
		newSchema(Schema{
			Type: Interface, Name: "interface", APIPath: "dcim/interfaces", PrimaryKey: "name",
			SecondaryKey: "device", EnforceSecondaryKey: true, Prune: true,
			Attributes: []Attribute{
				{"name", BoundedString(64)},
				{"device", Reference(Device)},
				{"label", BoundedString(64)},
				{"type", Choice(portType...)},
				{"enabled", Bool()},
				{"mac_address", FreeString()},
				{"mgmt_only", Bool()},
				{"mtu", Integer()},
				{"mode", Choice(portMode...)},
				{"untagged_vlan", Reference(VLAN)},
				{"tagged_vlans", VLANList()},
				{"description", BoundedString(200)},
				{"connection_status", Bool()},
				{"tags", TagList()},
			},
		}),
		newSchema(Schema{
			Type: IPAddress, Name: "IP address", APIPath: "ipam/ip-addresses", PrimaryKey: "address",
			Prune: true,
			Attributes: []Attribute{
				{"address", FreeString()},
				{"assigned_object_type", AssignedObjectRelation.Discriminator()},
				{"assigned_object_id", Polymorphic("assigned_object_type", AssignedObjectRelation)},
				{"description", BoundedString(200)},
				{"dns_name", BoundedString(255)},
				{"tags", TagList()},
				{"tenant", Reference(Tenant)},
				{"vrf", Reference(VRF)},
			},
		}),
	}
}
