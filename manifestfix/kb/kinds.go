package kb

// KnownKinds is the set of canonical Kind names the fuzzy matcher corrects
// the value of a "kind:" line against.
var KnownKinds = map[string]bool{
	"Pod": true, "Deployment": true, "ReplicaSet": true, "ReplicationController": true,
	"StatefulSet": true, "DaemonSet": true, "Job": true, "CronJob": true,
	"Service": true, "Endpoints": true, "EndpointSlice": true,
	"Ingress": true, "IngressClass": true, "NetworkPolicy": true,
	"ConfigMap": true, "Secret": true, "Namespace": true, "Node": true,
	"PersistentVolume": true, "PersistentVolumeClaim": true, "StorageClass": true,
	"VolumeAttachment": true, "CSIDriver": true, "CSINode": true, "CSIStorageCapacity": true,
	"ServiceAccount": true, "Role": true, "RoleBinding": true,
	"ClusterRole": true, "ClusterRoleBinding": true,
	"HorizontalPodAutoscaler": true, "PodDisruptionBudget": true,
	"PodSecurityPolicy": true, "PodTemplate": true, "LimitRange": true,
	"ResourceQuota": true, "Event": true, "Lease": true,
	"CustomResourceDefinition": true, "APIService": true,
	"MutatingWebhookConfiguration": true, "ValidatingWebhookConfiguration": true,
	"PriorityClass": true, "RuntimeClass": true,
}

// DeprecatedAPIVersions maps a (Kind, deprecated apiVersion) pair it
// recognizes to the apiVersion Pass 2 upgrades it to.
var DeprecatedAPIVersions = map[[2]string]string{
	{"Ingress", "extensions/v1beta1"}:               "networking.k8s.io/v1",
	{"Ingress", "networking.k8s.io/v1beta1"}:        "networking.k8s.io/v1",
	{"CronJob", "batch/v1beta1"}:                    "batch/v1",
}

// DefaultAPIVersions maps a Kind to the apiVersion Pass 2 infers when one is
// missing entirely.
var DefaultAPIVersions = map[string]string{
	"Deployment":  "apps/v1",
	"StatefulSet": "apps/v1",
	"DaemonSet":   "apps/v1",
	"ReplicaSet":  "apps/v1",
	"Job":         "batch/v1",
	"CronJob":     "batch/v1",
	"Ingress":     "networking.k8s.io/v1",
}

// WorkloadControllerKinds are the kinds whose container spec Pass 2
// relocates under spec.template.spec when found elsewhere.
var WorkloadControllerKinds = map[string]bool{
	"Deployment": true, "ReplicaSet": true, "DaemonSet": true,
	"StatefulSet": true, "Job": true,
}

// NamespaceExemptKinds are cluster-scoped kinds that never receive a
// synthesized metadata.namespace.
var NamespaceExemptKinds = map[string]bool{
	"ClusterRole": true, "ClusterRoleBinding": true, "Namespace": true,
	"PersistentVolume": true, "StorageClass": true, "Node": true,
	"CustomResourceDefinition": true, "PriorityClass": true,
	"APIService": true, "RuntimeClass": true,
}

// RestartPolicyValues, ImagePullPolicyValues, ServiceTypeValues, and
// ProtocolValues are the canonical-case enum members Pass 2 normalizes
// case-insensitively matched input against.
var (
	RestartPolicyValues   = []string{"Always", "OnFailure", "Never"}
	ImagePullPolicyValues = []string{"Always", "IfNotPresent", "Never"}
	ServiceTypeValues     = []string{"ClusterIP", "NodePort", "LoadBalancer", "ExternalName"}
	ProtocolValues        = []string{"TCP", "UDP", "SCTP"}
)
